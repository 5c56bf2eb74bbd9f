package smf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"go-smf/timebasis"
	"go-smf/vlq"
)

// WriteFile serializes seq to a byte image and performs a single write to
// path, minimizing the partial-failure window (§5).
func WriteFile(path string, seq *Sequence) error {
	var buf bytes.Buffer
	if err := Write(&buf, seq); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("smf: write %s: %w", path, err)
	}
	return nil
}

// Write serializes seq as a format-1 Standard MIDI File to w: a header
// chunk, the conductor track, then each content track, all with
// running-status compression. It never silently drops data; any event it
// cannot encode losslessly produces an error.
func Write(w io.Writer, seq *Sequence) error {
	var buf bytes.Buffer

	buf.WriteString("MThd")
	writeUint32(&buf, 6)
	writeUint16(&buf, uint16(seq.Format()))
	writeUint16(&buf, uint16(seq.TrackCount()))
	writeUint16(&buf, timebasis.Emit(seq.Basis))

	all := append([]Track{seq.Conductor}, seq.Tracks...)
	for _, t := range all {
		body, err := encodeTrack(t)
		if err != nil {
			return err
		}
		buf.WriteString("MTrk")
		writeUint32(&buf, uint32(len(body)))
		buf.Write(body)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// writerState mirrors readerState: the running-status the writer has most
// recently emitted, used to decide when a status byte can be omitted.
type writerState struct {
	hasStatus bool
	kind      uint8
	channel   uint8
}

func encodeTrack(t Track) ([]byte, error) {
	var buf bytes.Buffer
	var st writerState

	for _, e := range t.Events {
		delta, err := vlq.Encode(e.Delta)
		if err != nil {
			return nil, fmt.Errorf("smf: encode event delta: %w", err)
		}
		buf.Write(delta)

		switch {
		case e.Tag.IsChannelVoice():
			if err := encodeChannelVoice(&buf, &st, e); err != nil {
				return nil, err
			}

		case e.Tag == SysEx:
			buf.WriteByte(0xF0)
			if err := writeVarlenBytes(&buf, e.Data); err != nil {
				return nil, fmt.Errorf("smf: encode sysex: %w", err)
			}
			st = writerState{}

		case e.Tag == UnknownStatus:
			buf.WriteByte(e.StatusByte)
			st = writerState{}

		default: // meta, including UnknownMeta and TrackEnd
			buf.WriteByte(0xFF)
			buf.WriteByte(metaTypeOf(e))
			if err := writeVarlenBytes(&buf, e.Data); err != nil {
				return nil, fmt.Errorf("smf: encode meta 0x%02X: %w", metaTypeOf(e), err)
			}
			st = writerState{}
		}
	}

	return buf.Bytes(), nil
}

func metaTypeOf(e Event) uint8 {
	if e.Tag == UnknownMeta {
		return e.MetaType
	}
	return metaCode[e.Tag]
}

func writeVarlenBytes(buf *bytes.Buffer, data []byte) error {
	lenBytes, err := vlq.Encode(uint32(len(data)))
	if err != nil {
		return err
	}
	buf.Write(lenBytes)
	buf.Write(data)
	return nil
}

// encodeChannelVoice applies the required running-status compression: the
// same (kind, channel) as the previous emitted status omits a new status
// byte, and a note-off with velocity 64 following a note-on running status
// on the same channel is rewritten as a note-on-with-velocity-0 (the exact
// inverse of the reader's normalization), also without a new status byte.
func encodeChannelVoice(buf *bytes.Buffer, st *writerState, e Event) error {
	kind := channelVoiceKind[e.Tag]

	if e.Tag == NoteOff && e.Data2 == 64 && st.hasStatus && st.kind == channelVoiceKind[NoteOn] && st.channel == e.Channel {
		buf.WriteByte(e.Data1)
		buf.WriteByte(0)
		return nil // running status continues as note-on; kind/channel unchanged
	}

	if !(st.hasStatus && st.kind == kind && st.channel == e.Channel) {
		buf.WriteByte(kind<<4 | e.Channel&0x0F)
		*st = writerState{hasStatus: true, kind: kind, channel: e.Channel}
	}

	if e.Tag == PitchBend {
		// In-memory order is MSB first; the wire wants lsb(7), msb(7).
		buf.WriteByte(e.Data2)
		buf.WriteByte(e.Data1)
		return nil
	}

	buf.WriteByte(e.Data1)
	if channelVoiceDataLen(kind) == 2 {
		buf.WriteByte(e.Data2)
	}
	return nil
}
