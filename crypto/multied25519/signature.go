package multied25519

import (
	"cmp"
	"slices"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/crypto/ed25519"
)

var (
	_ bcs.Marshaler   = Signature{}
	_ bcs.Unmarshaler = (*Signature)(nil)
)

// IndexedSignature is the signature of the member at Index.
type IndexedSignature struct {
	Index     uint8
	Signature ed25519.Signature
}

// Signature is a multi signature: member signatures in ascending index order
// and the bitmap of the members that produced them.
type Signature struct {
	signatures []ed25519.Signature
	bitmap     Bitmap
}

// NewSignature builds a multi signature for a key set of numKeys members. The
// signatures are reordered by index so that they match the bitmap regardless
// of the order they were collected in.
func NewSignature(sigs []IndexedSignature, numKeys int) (*Signature, error) {
	indices := make([]uint8, len(sigs))
	for i, sig := range sigs {
		indices[i] = sig.Index
	}

	bitmap, err := NewBitmap(indices, numKeys)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(sigs)
	slices.SortFunc(sorted, func(a, b IndexedSignature) int {
		return cmp.Compare(a.Index, b.Index)
	})

	signatures := make([]ed25519.Signature, len(sorted))
	for i, sig := range sorted {
		signatures[i] = sig.Signature
	}

	return &Signature{
		signatures: signatures,
		bitmap:     bitmap,
	}, nil
}

// NewSignatureFromBitmap pairs signatures, already in ascending index order,
// with an explicit bitmap.
func NewSignatureFromBitmap(sigs []ed25519.Signature, bitmap Bitmap) (*Signature, error) {
	if bitmap.Count() != len(sigs) {
		return nil, errorsmod.Wrapf(ErrInvalidSignerIndex, "bitmap marks %d signers but %d signatures are given", bitmap.Count(), len(sigs))
	}

	return &Signature{
		signatures: slices.Clone(sigs),
		bitmap:     bitmap,
	}, nil
}

// NewSignatureFromBytes parses signatures | bitmap.
func NewSignatureFromBytes(bz []byte) (*Signature, error) {
	if len(bz) < BitmapSize || (len(bz)-BitmapSize)%ed25519.SignatureSize != 0 {
		return nil, errorsmod.Wrapf(ErrInvalidSignature, "invalid multi signature size %d", len(bz))
	}

	numSigs := (len(bz) - BitmapSize) / ed25519.SignatureSize
	if numSigs > MaxSigners {
		return nil, errorsmod.Wrapf(ErrInvalidSignature, "%d signatures exceed the maximum of %d", numSigs, MaxSigners)
	}

	sigs := make([]ed25519.Signature, numSigs)
	for i := range sigs {
		copy(sigs[i][:], bz[i*ed25519.SignatureSize:(i+1)*ed25519.SignatureSize])
	}

	var bitmap Bitmap
	copy(bitmap[:], bz[len(bz)-BitmapSize:])

	return NewSignatureFromBitmap(sigs, bitmap)
}

// Signatures returns a copy of the member signatures in ascending index order.
func (sig Signature) Signatures() []ed25519.Signature {
	return slices.Clone(sig.signatures)
}

// Bitmap returns the signer bitmap.
func (sig Signature) Bitmap() Bitmap {
	return sig.bitmap
}

// Count returns the number of member signatures.
func (sig Signature) Count() int {
	return len(sig.signatures)
}

// IndexedSignatures pairs each signature with its member index.
func (sig Signature) IndexedSignatures() []IndexedSignature {
	indices := sig.bitmap.Indices()

	out := make([]IndexedSignature, len(sig.signatures))
	for i := range sig.signatures {
		out[i] = IndexedSignature{Index: indices[i], Signature: sig.signatures[i]}
	}

	return out
}

// Bytes returns the concatenated signatures followed by the 4 byte bitmap.
func (sig Signature) Bytes() []byte {
	bz := make([]byte, 0, len(sig.signatures)*ed25519.SignatureSize+BitmapSize)
	for _, s := range sig.signatures {
		bz = append(bz, s[:]...)
	}

	return append(bz, sig.bitmap[:]...)
}

// MarshalBCS writes Bytes() as a length prefixed byte string.
func (sig Signature) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeBytes(sig.Bytes())
}

func (sig *Signature) UnmarshalBCS(d *bcs.Deserializer) error {
	bz, err := d.DeserializeBytes()
	if err != nil {
		return err
	}

	parsed, err := NewSignatureFromBytes(bz)
	if err != nil {
		return errorsmod.Wrap(bcs.ErrMalformedInput, err.Error())
	}

	*sig = *parsed
	return nil
}
