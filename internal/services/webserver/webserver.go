package webserver

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/valyala/fasthttp"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/sessions"
)

// Webserver exposes a small read-only status API over fasthttp.
type Webserver struct {
	addr string
	db   database.Database
	sess sessions.Provider
	srv  *fasthttp.Server
}

func New(addr string, db database.Database, sess sessions.Provider) *Webserver {
	ws := &Webserver{
		addr: addr,
		db:   db,
		sess: sess,
	}
	ws.srv = &fasthttp.Server{
		Handler: ws.handle,
	}
	return ws
}

// ListenAndServeBlocking serves until Stop is called.
func (ws *Webserver) ListenAndServeBlocking() error {
	log.Info("Webserver listening", "Addr", ws.addr)
	return ws.srv.ListenAndServe(ws.addr)
}

func (ws *Webserver) Stop() error {
	return ws.srv.Shutdown()
}

func (ws *Webserver) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, models.Ok)
	case "/api/status":
		ws.handleStatus(ctx)
	default:
		writeJSON(ctx, fasthttp.StatusNotFound, &models.Error{
			Error: "not found",
			Code:  fasthttp.StatusNotFound,
		})
	}
}

func (ws *Webserver) handleStatus(ctx *fasthttp.RequestCtx) {
	profiles, err := ws.db.GetProfiles()
	if err != nil {
		writeJSON(ctx, fasthttp.StatusInternalServerError, &models.Error{
			Error: "failed reading profiles",
			Code:  fasthttp.StatusInternalServerError,
		})
		return
	}

	active := ws.sess.Active()

	report := &models.StatusReport{
		Guilds:   len(active),
		Sessions: active,
		Profiles: len(profiles),
	}

	writeJSON(ctx, fasthttp.StatusOK, report)
}

func writeJSON(ctx *fasthttp.RequestCtx, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
