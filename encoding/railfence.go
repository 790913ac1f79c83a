package encoding

import (
	"github.com/corpix/railfence/railfence"
)

// EncodeDecoderRailFence enciphers the input and passes the cipher text to
// Container, decoding goes the other way around.
type EncodeDecoderRailFence struct {
	Cipher    *railfence.RailFence
	Container EncodeDecoder
}

var _ EncodeDecoder = &EncodeDecoderRailFence{}

func (e *EncodeDecoderRailFence) Encode(buf []byte) ([]byte, error) {
	return e.Container.Encode(e.Cipher.EncodeBytes(buf))
}

func (e *EncodeDecoderRailFence) Decode(buf []byte) ([]byte, error) {
	cipherText, err := e.Container.Decode(buf)
	if err != nil {
		return nil, err
	}
	return e.Cipher.DecodeBytes(cipherText)
}

func NewEncodeDecoderRailFence(cipher *railfence.RailFence, container EncodeDecoder) *EncodeDecoderRailFence {
	if container == nil {
		container = NewEncodeDecoderRaw()
	}
	return &EncodeDecoderRailFence{
		Cipher:    cipher,
		Container: container,
	}
}
