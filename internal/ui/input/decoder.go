package input

import (
	"cmenu/internal/ui/input/types"
)

// ChunkSize is how many bytes one keyboard read may return. An escape sequence
// longer than the keys below still arrives in a single chunk and is ignored whole.
const ChunkSize = 32

// Raw key codes as delivered by a terminal in raw mode
const (
	KeyInterrupt = 0x03
	KeyEnter     = 0x0d
	KeyEscape    = 0x1b
	KeyBackspace = 0x7f
)

// Arrow key sequences in normal (CSI) and application cursor (SS3) mode
const (
	SeqUp      = "\x1b[A"
	SeqDown    = "\x1b[B"
	SeqUpSS3   = "\x1bOA"
	SeqDownSS3 = "\x1bOB"
)

// Decode classifies one raw read as a single logical event. The whole chunk is
// the token: anything that is not one of the known keys decodes to EventNone.
func Decode(chunk []byte) types.Event {
	switch len(chunk) {
	case 1:
		b := chunk[0]
		switch {
		case b >= 0x20 && b <= 0x7e:
			return types.Char(b)
		case b == KeyEnter:
			return types.Key(types.EventConfirm)
		case b == KeyBackspace:
			return types.Key(types.EventErase)
		case b == KeyInterrupt:
			return types.Key(types.EventCancel)
		}
	case 3:
		switch string(chunk) {
		case SeqUp, SeqUpSS3:
			return types.Key(types.EventUp)
		case SeqDown, SeqDownSS3:
			return types.Key(types.EventDown)
		}
	}
	return types.Key(types.EventNone)
}
