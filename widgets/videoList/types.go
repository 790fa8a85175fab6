package videoList

// Item is one selectable cutscene in the menu
type Item struct {
	Title      string
	Subtitle   string   // shortcut key and sheet count hint
	ColorStart [3]uint8 // RGB start color for gradient
	ColorEnd   [3]uint8 // RGB end color for gradient
}

// Palette cycles through gradients so neighbouring items stay distinguishable
var Palette = [][2][3]uint8{
	{{59, 130, 246}, {30, 64, 175}},
	{{236, 72, 153}, {131, 24, 67}},
	{{16, 185, 129}, {6, 95, 70}},
	{{245, 158, 11}, {146, 64, 14}},
}
