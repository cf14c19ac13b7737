package srv

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/core/config"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/session"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	msgSuccess     = "success"
	msgNotFound    = "not_found"
	msgInternalErr = "internal_err"
)

func NewHttpServer(cfg *config.HttpConfig, manager *session.HySessionManager) *HttpServer {
	return &HttpServer{
		addr:    cfg.Ip,
		port:    cfg.Port,
		manager: manager,
	}
}

// HttpServer exposes the session registry over a small JSON API.
type HttpServer struct {
	port    int
	addr    string
	manager *session.HySessionManager

	e   *gin.Engine
	srv *http.Server
}

func (h *HttpServer) Name() string {
	return "http_api"
}

func (h *HttpServer) Init() error {
	e := gin.New()
	e.Use(gin.Recovery())
	h.e = e
	v1 := e.Group("v1")
	h.v1(v1)
	h.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", h.addr, h.port),
		Handler: e,
	}
	return nil
}

func (h *HttpServer) Handler() http.Handler {
	return h.e
}

// Serve blocks until the server is shut down.
func (h *HttpServer) Serve() error {
	log.Infof(context.Background(), "%s listen on %s", h.Name(), h.srv.Addr)
	err := h.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *HttpServer) Close(ctx context.Context) error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}

func (h *HttpServer) v1(v1 *gin.RouterGroup) {
	sessionG := v1.Group("session")
	{
		sessionG.GET("list", h.listSessions)
		sessionG.GET(":name", h.getSession)
		sessionG.DELETE(":name", h.closeSession)
	}
}

func (h *HttpServer) listSessions(c *gin.Context) {
	h.ok(c, h.manager.List())
}

func (h *HttpServer) getSession(c *gin.Context) {
	sess, ok := h.manager.Get(c.Param("name"))
	if !ok {
		h.ret(c, http.StatusNotFound, msgNotFound, nil)
		return
	}
	h.ok(c, sess.Info())
}

func (h *HttpServer) closeSession(c *gin.Context) {
	name := c.Param("name")
	err := h.manager.Close(c.Request.Context(), name)
	switch {
	case err == nil:
		h.ok(c, nil)
	case errors.Is(err, constdef.ErrSessionNotFound):
		h.ret(c, http.StatusNotFound, msgNotFound, nil)
	default:
		log.Errorf(c.Request.Context(), "close session %s err: %+v", name, err)
		h.ret(c, http.StatusInternalServerError, msgInternalErr, err.Error())
	}
}

func (h *HttpServer) ok(c *gin.Context, data interface{}) {
	h.ret(c, http.StatusOK, msgSuccess, data)
}

func (h *HttpServer) ret(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(code, gin.H{
		"message": msg,
		"data":    data,
	})
}
