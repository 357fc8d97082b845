// Package http provides http transport for the agent
package http

import (
	stdhttp "net/http"

	"trendscout/internal/adapters/openfloor"
	"trendscout/internal/modkit/httpkit"
	"trendscout/internal/platform/logger"
	pnet "trendscout/internal/platform/net"
	"trendscout/internal/platform/net/http/bind"
	svc "trendscout/internal/services/agent/service"
)

// MaxBytes caps an inbound envelope
const MaxBytes = 1 << 20

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/", httpkit.Handle(h.envelope))
	httpkit.Get(r, "/manifest", h.manifest)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /openfloor OpenFloor envelope
// @Summary Process an Open Floor envelope
// @Description Answers utterances addressed to this agent with a GitHub trend report and getManifests with the capability manifest.
// @Tags openfloor
// @Accept json
// @Produce json
// @Param payload body openfloor.Payload true "Envelope"
// @Success 200 {object} openfloor.Payload "outbound envelope"
// @Failure 400 {object} httpkit.Envelope "invalid envelope"
// @Router /openfloor [post]
func (h *handlers) envelope(r *stdhttp.Request) httpkit.Response {
	body, err := bind.ReadBody(r, MaxBytes)
	if err != nil {
		return httpkit.Error(err)
	}

	res := openfloor.Decode(body)
	if !res.Valid {
		logger.C(r.Context()).Debug().Strs("errors", res.Errors).Msg("envelope rejected")
		return httpkit.Error(res.Err())
	}

	ctx := pnet.WithRequest(r.Context(), "", res.Envelope.Conversation.ID)
	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), pnet.ConversationID(ctx))

	out := h.svc.ProcessEnvelope(ctx, *res.Envelope)
	b, err := openfloor.Encode(out)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.RawJSON(stdhttp.StatusOK, b)
}

// swagger:route GET /openfloor/manifest OpenFloor manifest
// @Summary Capability manifest
// @Tags openfloor
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=domain.Manifest} "ok"
// @Router /openfloor/manifest [get]
func (h *handlers) manifest(_ *stdhttp.Request) (any, error) {
	return h.svc.Manifest(), nil
}
