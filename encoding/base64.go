package encoding

import (
	"bytes"
	"encoding/base64"

	"github.com/corpix/railfence/errors"
)

type EncodeDecoderBase64 struct {
	encoding *base64.Encoding
}

var _ EncodeDecoder = &EncodeDecoderBase64{}

//

func (e *EncodeDecoderBase64) Encode(buf []byte) ([]byte, error) {
	dst := make([]byte, e.encoding.EncodedLen(len(buf)))
	e.encoding.Encode(dst, buf)
	return dst, nil
}

func (e *EncodeDecoderBase64) Decode(buf []byte) ([]byte, error) {
	buf = bytes.TrimSpace(buf)
	dst := make([]byte, e.encoding.DecodedLen(len(buf)))
	n, err := e.encoding.Decode(dst, buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64")
	}
	return dst[:n], nil
}

func NewEncodeDecoderBase64() *EncodeDecoderBase64 {
	return &EncodeDecoderBase64{encoding: base64.StdEncoding}
}
