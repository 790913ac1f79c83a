package encoding

type EncodeDecoderRaw struct{}

var _ EncodeDecoder = &EncodeDecoderRaw{}

func (e *EncodeDecoderRaw) Encode(buf []byte) ([]byte, error) { return buf, nil }
func (e *EncodeDecoderRaw) Decode(buf []byte) ([]byte, error) { return buf, nil }

func NewEncodeDecoderRaw() *EncodeDecoderRaw {
	return &EncodeDecoderRaw{}
}
