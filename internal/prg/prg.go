// Package prg implements the deterministic, seedable byte stream used
// to sample permutations and bulk randomizers. It is AES-128 in
// counter mode, built on the standard library's crypto/aes and
// crypto/cipher. It must never be used to derive Fiat-Shamir
// challenges; that is the Transcript's job.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
)

// WordSize is the byte length of a machine word drawn by NextWord.
const WordSize = 8

// SeedSize is the fixed byte length of a PRG seed.
const SeedSize = 16

// BlockSize is the AES block size in bytes.
const BlockSize = aes.BlockSize

// nonceConst is the fixed high half of the initial counter block.
const nonceConst = uint64(0x0123456789ABCDEF)

// PRG is a seeded, deterministic AES-128-CTR byte stream. The counter
// block's high 8 bytes are pinned to nonceConst and the low 8 bytes
// start at zero; crypto/cipher.NewCTR then advances the full 16-byte
// block as an ordinary big-endian counter on every 16 bytes produced,
// which covers exactly ceil(n/BlockSize) blocks for any Fill call.
type PRG struct {
	stream cipher.Stream
}

// New seeds a PRG from a 16-byte key.
func New(seed [SeedSize]byte) (*PRG, error) {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, mixerr.ErrRuntime
	}
	iv := make([]byte, BlockSize)
	binary.BigEndian.PutUint64(iv[0:8], nonceConst)
	return &PRG{stream: cipher.NewCTR(block, iv)}, nil
}

// Fill writes len(dest) pseudorandom bytes into dest. Fill never
// fails: a PRG only errors at construction time (a malformed seed).
func (p *PRG) Fill(dest []byte) {
	if len(dest) == 0 {
		return
	}
	// Draw whole blocks so the counter advances by ceil(len(dest)/BlockSize);
	// the unused tail of the last block is discarded, not carried over.
	nblocks := (len(dest) + BlockSize - 1) / BlockSize
	buf := make([]byte, nblocks*BlockSize)
	p.stream.XORKeyStream(buf, buf)
	copy(dest, buf)
}

// NextWord draws the next 8-byte machine word from the stream, used by
// Fisher-Yates permutation sampling.
func (p *PRG) NextWord() uint64 {
	var b [WordSize]byte
	p.Fill(b[:])
	return binary.BigEndian.Uint64(b[:])
}
