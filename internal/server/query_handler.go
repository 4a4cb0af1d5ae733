package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jroosing/framedns/internal/dns"
)

// Sources reported in HandleResult.
const (
	SourceAnswer    = "answer"
	SourceNotImp    = "notimp"
	SourceTruncated = "truncated"
	SourceFormErr   = "formerr"
	SourceDropped   = "dropped"
)

// QueryHandler decodes a datagram, asks the Responder for a reply and
// encodes it. It never returns a partially built frame.
type QueryHandler struct {
	Logger    *slog.Logger // Optional logger for debug output
	Responder *Responder
	Stats     *Stats // Optional
}

// HandleResult contains the outcome of handling one datagram.
type HandleResult struct {
	ResponseBytes []byte      // 512-byte frame, nil when nothing should be sent
	Source        string      // one of the Source* constants
	Parsed        dns.Message // decoded request (if ParsedOK is true)
	ParsedOK      bool
}

// Handle processes one datagram from src.
func (h *QueryHandler) Handle(ctx context.Context, src string, reqBytes []byte) HandleResult {
	start := time.Now()

	res := h.handle(ctx, src, reqBytes)

	if h.Stats != nil {
		switch res.Source {
		case SourceAnswer, SourceNotImp:
			h.Stats.RecordAnswered()
		case SourceTruncated:
			h.Stats.RecordTruncated()
		case SourceFormErr:
			h.Stats.RecordFormErr()
		default:
			h.Stats.RecordDropped()
		}
		if res.ResponseBytes != nil {
			h.Stats.RecordLatency(time.Since(start))
		}
	}
	return res
}

func (h *QueryHandler) handle(ctx context.Context, src string, reqBytes []byte) HandleResult {
	query, err := dns.ParseMessage(reqBytes)
	if err != nil {
		return h.handleParseError(ctx, src, reqBytes, err)
	}

	if query.Header.IsResponse() {
		h.debug(ctx, "dropping response datagram", "src", src, "id", int(query.Header.ID))
		return HandleResult{Source: SourceDropped, Parsed: query, ParsedOK: true}
	}

	resp, err := h.Responder.Respond(query)
	if err != nil {
		h.debug(ctx, "cannot build response", "src", src, "id", int(query.Header.ID), "err", err)
		return HandleResult{Source: SourceDropped, Parsed: query, ParsedOK: true}
	}

	source := SourceAnswer
	if resp.Header.RCode == dns.RCodeNotImp {
		source = SourceNotImp
	}

	out, err := resp.Marshal()
	if errors.Is(err, dns.ErrMessageTooLarge) {
		// Long names can push question plus answer past the frame.
		resp.Answer = nil
		resp.Header.ANCount = 0
		resp.Header.TC = true
		source = SourceTruncated
		out, err = resp.Marshal()
	}
	if err != nil {
		h.debug(ctx, "cannot encode response", "src", src, "id", int(query.Header.ID), "err", err)
		return HandleResult{Source: SourceDropped, Parsed: query, ParsedOK: true}
	}

	h.logRequest(ctx, src, query, len(reqBytes), source)
	return HandleResult{ResponseBytes: out, Source: source, Parsed: query, ParsedOK: true}
}

// handleParseError answers FORMERR when a header is present and drops otherwise.
func (h *QueryHandler) handleParseError(ctx context.Context, src string, reqBytes []byte, err error) HandleResult {
	resp, ok := FormErrResponse(reqBytes)
	if !ok {
		h.debug(ctx, "dropping malformed datagram", "src", src, "bytes", len(reqBytes), "err", err)
		return HandleResult{Source: SourceDropped}
	}
	h.debug(ctx, "malformed query", "src", src, "bytes", len(reqBytes), "err", err)
	return HandleResult{ResponseBytes: resp, Source: SourceFormErr}
}

// logRequest logs request details at debug level.
func (h *QueryHandler) logRequest(ctx context.Context, src string, query dns.Message, reqLen int, source string) {
	if h.Logger == nil || !h.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	qname, qtype := "<no-question>", ""
	if query.Question != nil {
		qname = query.Question.Name.String()
		qtype = query.Question.Type.String()
	}
	h.Logger.Debug(
		"dns request",
		"src", src,
		"id", int(query.Header.ID),
		"opcode", query.Header.Opcode.String(),
		"qname", qname,
		"qtype", qtype,
		"bytes", reqLen,
		"source", source,
	)
}

func (h *QueryHandler) debug(ctx context.Context, msg string, args ...any) {
	if h.Logger == nil {
		return
	}
	h.Logger.DebugContext(ctx, msg, args...)
}
