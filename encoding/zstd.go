package encoding

import (
	"github.com/klauspost/compress/zstd"

	"github.com/corpix/railfence/errors"
)

// EncodeDecoderZstd compresses with zstd and wraps the frame into base64
// so it could be printed.
type EncodeDecoderZstd struct {
	*EncodeDecoderBase64
}

var _ EncodeDecoder = &EncodeDecoderZstd{}

//

func (e *EncodeDecoderZstd) Encode(buf []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return e.EncodeDecoderBase64.Encode(enc.EncodeAll(buf, nil))
}

func (e *EncodeDecoderZstd) Decode(buf []byte) ([]byte, error) {
	frame, err := e.EncodeDecoderBase64.Decode(buf)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(frame, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress zstd frame")
	}
	return out, nil
}

func NewEncodeDecoderZstd() *EncodeDecoderZstd {
	return &EncodeDecoderZstd{EncodeDecoderBase64: NewEncodeDecoderBase64()}
}
