package domain

import (
	"encoding/binary"
	"fmt"
)

// Envelope is the self-describing package wrapping a sealed payload with
// the metadata needed to decrypt it later without external context.
//
// The binary layout is a durable on-disk contract; packages persisted
// today must remain decodable indefinitely. Field order is fixed:
//
//	[1]  algorithm length
//	[n]  algorithm (UTF-8)
//	[4]  format version (big-endian uint32)
//	[1]  key id length
//	[n]  key id (UTF-8)
//	[4]  sealed payload length (big-endian uint32)
//	[n]  sealed payload (nonce ‖ ciphertext ‖ tag)
//
// New optional fields may only be appended behind a format version bump;
// changing the meaning of existing fields is never allowed.
type Envelope struct {
	// Algorithm names the AEAD cipher that sealed the payload.
	Algorithm Algorithm
	// FormatVersion is the envelope format revision that produced this
	// package. Readers reject versions newer than CurrentFormatVersion.
	FormatVersion uint32
	// KeyID identifies the data-encryption key in the KeyRing, recorded
	// at encryption time so decryption needs no out-of-band key selection.
	KeyID string
	// Payload is the opaque sealed bytes, laid out as
	// nonce(12) ‖ ciphertext(n) ‖ tag(16). Only the cipher layer looks
	// inside it.
	Payload []byte
}

// Marshal serializes the envelope to its binary representation.
//
// Serialization is deterministic: the same envelope always produces the
// same bytes. Field values that cannot be represented (empty algorithm
// or key id, oversized fields, zero version, undersized payload) return
// ErrMalformedEnvelope so a broken package can never be produced.
func (e *Envelope) Marshal() ([]byte, error) {
	if e.Algorithm == "" || len(e.Algorithm) > 255 {
		return nil, fmt.Errorf("%w: invalid algorithm field", ErrMalformedEnvelope)
	}
	if e.KeyID == "" || len(e.KeyID) > 255 {
		return nil, fmt.Errorf("%w: invalid key id field", ErrMalformedEnvelope)
	}
	if e.FormatVersion == 0 {
		return nil, fmt.Errorf("%w: format version must be positive", ErrMalformedEnvelope)
	}
	if len(e.Payload) < MinPayloadSize {
		return nil, fmt.Errorf(
			"%w: sealed payload is %d bytes, minimum is %d",
			ErrMalformedEnvelope, len(e.Payload), MinPayloadSize,
		)
	}

	buf := make([]byte, 0, 1+len(e.Algorithm)+4+1+len(e.KeyID)+4+len(e.Payload))
	buf = append(buf, byte(len(e.Algorithm)))
	buf = append(buf, e.Algorithm...)
	buf = binary.BigEndian.AppendUint32(buf, e.FormatVersion)
	buf = append(buf, byte(len(e.KeyID)))
	buf = append(buf, e.KeyID...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(e.Payload)))
	buf = append(buf, e.Payload...)

	return buf, nil
}

// UnmarshalEnvelope parses the binary representation produced by Marshal.
//
// Decoding is all-or-nothing: the result is either a fully well-formed
// envelope or ErrMalformedEnvelope; no partially valid state is ever
// exposed. Truncated input, zero-length identifier fields, a zero
// version, an undersized payload, and trailing bytes are all rejected.
//
// Version gating is deliberately not performed here: the service layer
// compares FormatVersion against CurrentFormatVersion so it can report
// ErrUnsupportedVersion distinctly from structural corruption.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	r := envelopeReader{data: data}

	alg, err := r.lengthPrefixedString("algorithm")
	if err != nil {
		return Envelope{}, err
	}

	version, err := r.uint32Field("format version")
	if err != nil {
		return Envelope{}, err
	}
	if version == 0 {
		return Envelope{}, fmt.Errorf("%w: format version must be positive", ErrMalformedEnvelope)
	}

	keyID, err := r.lengthPrefixedString("key id")
	if err != nil {
		return Envelope{}, err
	}

	payloadLen, err := r.uint32Field("payload length")
	if err != nil {
		return Envelope{}, err
	}
	payload, err := r.bytes(int(payloadLen), "sealed payload")
	if err != nil {
		return Envelope{}, err
	}
	if len(payload) < MinPayloadSize {
		return Envelope{}, fmt.Errorf(
			"%w: sealed payload is %d bytes, minimum is %d",
			ErrMalformedEnvelope, len(payload), MinPayloadSize,
		)
	}

	if r.remaining() != 0 {
		return Envelope{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedEnvelope, r.remaining())
	}

	return Envelope{
		Algorithm:     Algorithm(alg),
		FormatVersion: version,
		KeyID:         keyID,
		Payload:       payload,
	}, nil
}

// envelopeReader is a cursor over envelope bytes with bounds checking.
type envelopeReader struct {
	data []byte
	pos  int
}

func (r *envelopeReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *envelopeReader) bytes(n int, field string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: truncated %s", ErrMalformedEnvelope, field)
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *envelopeReader) lengthPrefixedString(field string) (string, error) {
	if r.remaining() < 1 {
		return "", fmt.Errorf("%w: truncated %s length", ErrMalformedEnvelope, field)
	}
	n := int(r.data[r.pos])
	r.pos++
	if n == 0 {
		return "", fmt.Errorf("%w: empty %s", ErrMalformedEnvelope, field)
	}
	b, err := r.bytes(n, field)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *envelopeReader) uint32Field(field string) (uint32, error) {
	b, err := r.bytes(4, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}
