package http

import (
	"encoding/json"
	"mime"

	msgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/corpix/railfence/errors"
)

type (
	Codec interface {
		ContentType() string
		Marshal(v interface{}) ([]byte, error)
		Unmarshal(buf []byte, v interface{}) error
	}
	CodecJson    struct{}
	CodecMsgpack struct{}
)

const (
	ContentTypeJson       = "application/json"
	ContentTypeMsgpack    = "application/msgpack"
	ContentTypeMsgpackX   = "application/x-msgpack"
	ContentTypeVndMsgpack = "application/vnd.msgpack"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")

	_ Codec = CodecJson{}
	_ Codec = CodecMsgpack{}
)

func (CodecJson) ContentType() string                       { return ContentTypeJson }
func (CodecJson) Marshal(v interface{}) ([]byte, error)     { return json.Marshal(v) }
func (CodecJson) Unmarshal(buf []byte, v interface{}) error { return json.Unmarshal(buf, v) }

func (CodecMsgpack) ContentType() string                       { return ContentTypeMsgpack }
func (CodecMsgpack) Marshal(v interface{}) ([]byte, error)     { return msgpack.Marshal(v) }
func (CodecMsgpack) Unmarshal(buf []byte, v interface{}) error { return msgpack.Unmarshal(buf, v) }

// CodecFor picks a codec by the request content type, JSON is assumed
// when the header is missing.
func CodecFor(r *Request) (Codec, error) {
	contentType := r.Header.Get(HeaderContentType)
	if contentType == "" {
		return CodecJson{}, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedContentType, "%q: %s", contentType, err)
	}
	switch mediaType {
	case ContentTypeJson:
		return CodecJson{}, nil
	case ContentTypeMsgpack, ContentTypeMsgpackX, ContentTypeVndMsgpack:
		return CodecMsgpack{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedContentType, "%q", mediaType)
	}
}

// Write marshals v with codec and sends it with status.
func Write(w ResponseWriter, r *Request, codec Codec, status int, v interface{}) {
	buf, err := codec.Marshal(v)
	if err != nil {
		l := RequestLogGet(r)
		l.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, codec.ContentType())
	w.WriteHeader(status)
	_, err = w.Write(buf)
	if err != nil {
		l := RequestLogGet(r)
		l.Warn().Err(err).Msg("failed to write response")
	}
}
