package http

import (
	"io"
	"unicode/utf8"

	"github.com/corpix/railfence/errors"
	"github.com/corpix/railfence/metrics"
	"github.com/corpix/railfence/railfence"
)

type (
	CipherRequest struct {
		Rails int    `json:"rails,omitempty" msgpack:"rails,omitempty"`
		Text  string `json:"text" msgpack:"text"`
	}
	CipherResponse struct {
		Rails int    `json:"rails" msgpack:"rails"`
		Text  string `json:"text" msgpack:"text"`
	}
	ErrorResponse struct {
		Error string `json:"error" msgpack:"error"`
	}

	// CipherHandler serves encode and decode requests, a request without
	// rails uses the configured rail count.
	CipherHandler struct {
		Config *railfence.Config
	}
	cipherFunc func(f *railfence.RailFence, text string) (string, error)
)

const CipherMaxBodySize = 1 << 20

func (h *CipherHandler) Encode(w ResponseWriter, r *Request) {
	h.serve(w, r, metrics.OperationEncode, func(f *railfence.RailFence, text string) (string, error) {
		return f.Encode(text), nil
	})
}

func (h *CipherHandler) Decode(w ResponseWriter, r *Request) {
	h.serve(w, r, metrics.OperationDecode, func(f *railfence.RailFence, text string) (string, error) {
		return f.Decode(text)
	})
}

func (h *CipherHandler) serve(w ResponseWriter, r *Request, operation string, fn cipherFunc) {
	l := RequestLogGet(r)

	codec, err := CodecFor(r)
	if err != nil {
		l.Warn().Err(err).Msg("rejecting request")
		Write(w, r, CodecJson{}, StatusUnsupportedMediaType, ErrorResponse{Error: err.Error()})
		return
	}

	buf, err := io.ReadAll(MaxBytesReader(w, r.Body, CipherMaxBodySize))
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request body")
		Write(w, r, codec, StatusRequestEntityTooLarge, ErrorResponse{Error: "request body is too large"})
		return
	}

	req := &CipherRequest{}
	err = codec.Unmarshal(buf, req)
	if err != nil {
		l.Warn().Err(err).Msg("failed to unmarshal request")
		Write(w, r, codec, StatusBadRequest, ErrorResponse{
			Error: errors.Wrap(err, "failed to unmarshal request").Error(),
		})
		return
	}

	rails := req.Rails
	if rails == 0 {
		rails = h.Config.Rails
	}

	fence, err := railfence.New(rails)
	if err == nil {
		var text string
		text, err = fn(fence, req.Text)
		if err == nil {
			metrics.ObserveCipher(operation, utf8.RuneCountInString(req.Text), nil)
			Write(w, r, codec, StatusOK, CipherResponse{Rails: rails, Text: text})
			return
		}
	}

	metrics.ObserveCipher(operation, 0, err)
	l.Warn().Err(err).Int("rails", rails).Str("operation", operation).Msg("cipher failed")
	Write(w, r, codec, StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func NewCipherHandler(c *railfence.Config) *CipherHandler {
	return &CipherHandler{Config: c}
}

// WithCipherHandlers mounts encode and decode endpoints into rr.
func WithCipherHandlers(c *railfence.Config, rr *Router) Option {
	return func(h *Http) {
		ch := NewCipherHandler(c)

		rr.Methods(MethodPost).Path("/encode").HandlerFunc(ch.Encode)
		rr.Methods(MethodPost).Path("/decode").HandlerFunc(ch.Decode)
	}
}
