package remote

import (
	"github.com/kataras/iris/v12"
)

func (s *Server) registerRoutes() {
	api := s.app.Party("/api")
	{
		api.Get("/videos", s.getVideos)
		api.Get("/status", s.getStatus)
		api.Post("/select/{name:string}", s.postSelect)
		api.Post("/stop", s.postStop)
		api.Get("/ws", s.handleWebSocket)
	}
}

func (s *Server) getVideos(ctx iris.Context) {
	ctx.JSON(iris.Map{"videos": s.videos})
}

func (s *Server) getStatus(ctx iris.Context) {
	ctx.JSON(s.Status())
}

func (s *Server) postSelect(ctx iris.Context) {
	name := ctx.Params().Get("name")
	cmd, ok := s.selectCommand(name)
	if !ok {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"error": "unknown video: " + name})
		return
	}
	s.accept(ctx, cmd)
}

func (s *Server) postStop(ctx iris.Context) {
	s.accept(ctx, Command{Kind: CommandStop})
}

func (s *Server) accept(ctx iris.Context, cmd Command) {
	if !s.enqueue(cmd) {
		ctx.StatusCode(iris.StatusServiceUnavailable)
		ctx.JSON(iris.Map{"error": "busy"})
		return
	}
	ctx.StatusCode(iris.StatusAccepted)
	ctx.JSON(iris.Map{"queued": commandName(cmd.Kind), "video": cmd.Name})
}

func (s *Server) selectCommand(name string) (Command, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Command{}, false
	}
	return Command{Kind: CommandSelect, Video: id, Name: name}, true
}

func commandName(k CommandKind) string {
	if k == CommandStop {
		return "stop"
	}
	return "select"
}
