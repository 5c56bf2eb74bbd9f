package smf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go-smf/timebasis"
	"go-smf/vlq"
)

// errTruncated is an internal control-flow signal: the meta type byte
// itself ran off the end of the track body. Unlike a corrupt length
// VLQ, this is the same "not enough bytes remain" leniency decodeTrack
// already applies when a channel-voice body is cut short, so it stops
// decoding the track rather than failing Read.
var errTruncated = errors.New("smf: meta type byte truncated")

// ReadFile opens path, reads it fully, and parses it as a Standard MIDI
// File. The file handle is closed on every exit path, success or error,
// before ReadFile returns.
func ReadFile(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("smf: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("smf: read %s: %w", path, err)
	}
	return Read(bytes.NewReader(data))
}

// Read parses r fully into a Sequence. The reader always yields some
// sequence for any byte stream that has intact chunk framing; in-stream
// anomalies recover as UnknownStatus/UnknownMeta events rather than
// aborting. It fails only on missing/truncated chunk framing, a corrupt
// VLQ, or an unrecognized SMPTE frame rate.
func Read(r io.Reader) (*Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("smf: read: %w", err)
	}
	return parse(data)
}

func findCookie(data []byte, start int, cookie string) int {
	if start > len(data) {
		return -1
	}
	idx := bytes.Index(data[start:], []byte(cookie))
	if idx < 0 {
		return -1
	}
	return start + idx
}

func parse(data []byte) (*Sequence, error) {
	hdrStart := findCookie(data, 0, "MThd")
	if hdrStart < 0 {
		return nil, fmt.Errorf("smf: %w: no MThd chunk", ErrBadCookie)
	}
	pos := hdrStart + 4

	if pos+4 > len(data) {
		return nil, fmt.Errorf("smf: %w: header length field", ErrTruncatedChunk)
	}
	hdrLen := binary.BigEndian.Uint32(data[pos : pos+4])
	pos += 4

	if pos+int(hdrLen) > len(data) {
		return nil, fmt.Errorf("smf: %w: header body", ErrTruncatedChunk)
	}
	hdr := data[pos : pos+int(hdrLen)]
	pos += int(hdrLen)

	if len(hdr) < 6 {
		return nil, fmt.Errorf("smf: %w: header body shorter than 6 bytes", ErrTruncatedChunk)
	}
	format := binary.BigEndian.Uint16(hdr[0:2])
	trackCount := binary.BigEndian.Uint16(hdr[2:4])
	divisionWord := binary.BigEndian.Uint16(hdr[4:6])

	basis, err := timebasis.Parse(divisionWord)
	if err != nil {
		return nil, err
	}

	rawTracks := make([]Track, 0, trackCount)
	for i := 0; i < int(trackCount); i++ {
		trkStart := findCookie(data, pos, "MTrk")
		if trkStart < 0 {
			return nil, fmt.Errorf("smf: %w: track %d", ErrBadCookie, i)
		}
		tp := trkStart + 4

		if tp+4 > len(data) {
			return nil, fmt.Errorf("smf: %w: track %d length field", ErrTruncatedChunk, i)
		}
		trkLen := binary.BigEndian.Uint32(data[tp : tp+4])
		tp += 4

		if tp+int(trkLen) > len(data) {
			return nil, fmt.Errorf("smf: %w: track %d body", ErrTruncatedChunk, i)
		}
		body := data[tp : tp+int(trkLen)]
		pos = tp + int(trkLen)

		track, err := decodeTrack(body)
		if err != nil {
			return nil, err
		}
		rawTracks = append(rawTracks, track)
	}

	seq := normalize(int(format), rawTracks)
	seq.Basis = basis
	return seq, nil
}

// readerState is the running-status state threaded through a single
// track's event loop. It is reset at the start of every track.
type readerState struct {
	hasStatus bool
	kind      uint8 // upper nibble of the last channel-voice status byte seen on the wire
	channel   uint8
}

func decodeTrack(body []byte) (Track, error) {
	var events []Event
	var st readerState
	pos := 0

	for pos < len(body) {
		delta, n, err := vlq.Decode(body[pos:])
		if err != nil {
			return Track{}, fmt.Errorf("smf: delta-time: %w", err)
		}
		pos += n

		if pos >= len(body) {
			break
		}

		b := body[pos]

		if b&0x80 == 0 {
			// Running status: reuse the last channel-voice status.
			if !st.hasStatus {
				events = append(events, Event{Tag: UnknownStatus, Delta: delta, StatusByte: b})
				pos++
				continue
			}
			e, consumed := decodeChannelVoiceBody(body[pos:], st.kind, st.channel, delta)
			if !consumed {
				break
			}
			events = append(events, e)
			pos += channelVoiceDataLen(st.kind)
			continue
		}

		pos++ // consume the status byte

		switch {
		case b == 0xFF:
			e, newPos, err := decodeMeta(body, pos, delta)
			if err != nil {
				if errors.Is(err, errTruncated) {
					pos = len(body)
					break
				}
				return Track{}, err
			}
			pos = newPos
			events = append(events, e)
			st = readerState{} // meta resets running status
			if e.Tag == TrackEnd {
				pos = len(body) // stop the track loop even if bytes remain
			}

		case b == 0xF0:
			e, newPos, err := decodeSysEx(body, pos, delta)
			if err != nil {
				if errors.Is(err, errTruncated) {
					pos = len(body)
					break
				}
				return Track{}, err
			}
			pos = newPos
			events = append(events, e)
			st = readerState{} // sysex resets running status

		case b >= 0x80 && b <= 0xEF:
			kind := b >> 4
			channel := b & 0x0F
			e, consumed := decodeChannelVoiceBody(body[pos:], kind, channel, delta)
			if !consumed {
				pos = len(body)
				break
			}
			pos += channelVoiceDataLen(kind)
			events = append(events, e)
			st = readerState{hasStatus: true, kind: kind, channel: channel}

		default:
			events = append(events, Event{Tag: UnknownStatus, Delta: delta, StatusByte: b})
		}
	}

	return Track{Events: events}.withTrackEnd(), nil
}

// decodeChannelVoiceBody reads the 1-2 data bytes for a channel-voice
// event of the given kind/channel, applying the note-on-velocity-0 ->
// note-off normalization. consumed is false if body is too short.
func decodeChannelVoiceBody(body []byte, kind, channel uint8, delta uint32) (Event, bool) {
	n := channelVoiceDataLen(kind)
	if len(body) < n {
		return Event{}, false
	}

	tag := kindChannelVoice[kind]
	data1 := body[0]
	var data2 uint8
	if n == 2 {
		data2 = body[1]
	}

	if tag == NoteOn && n == 2 && data2 == 0 {
		tag = NoteOff
		data2 = 64
	}

	if tag == PitchBend {
		// Wire order is lsb(7), msb(7); in-memory order is MSB first.
		data1, data2 = data2, data1
	}

	return Event{Tag: tag, Delta: delta, Channel: channel, Data1: data1, Data2: data2}, true
}

func decodeMeta(body []byte, pos int, delta uint32) (Event, int, error) {
	if pos >= len(body) {
		return Event{}, pos, errTruncated
	}
	metaType := body[pos]
	pos++

	length, n, err := vlq.Decode(body[pos:])
	if err != nil {
		return Event{}, pos, fmt.Errorf("smf: meta length: %w", err)
	}
	pos += n

	end := pos + int(length)
	if end > len(body) {
		end = len(body) // lenient: clamp rather than abort the whole file
	}
	payload := append([]byte(nil), body[pos:end]...)
	pos = end

	tag, ok := codeMeta[metaType]
	if !ok {
		return Event{Tag: UnknownMeta, Delta: delta, MetaType: metaType, Data: payload}, pos, nil
	}

	e := Event{Tag: tag, Delta: delta, MetaType: metaType, Data: payload}
	if tag == SetTempo && len(payload) >= 3 {
		e.MicrosecondsPerQuarter = uint32(payload[0])<<16 | uint32(payload[1])<<8 | uint32(payload[2])
	}
	return e, pos, nil
}

func decodeSysEx(body []byte, pos int, delta uint32) (Event, int, error) {
	length, n, err := vlq.Decode(body[pos:])
	if err != nil {
		return Event{}, pos, fmt.Errorf("smf: sysex length: %w", err)
	}
	pos += n

	end := pos + int(length)
	if end > len(body) {
		end = len(body)
	}
	payload := append([]byte(nil), body[pos:end]...)
	pos = end

	return Event{Tag: SysEx, Delta: delta, Data: payload}, pos, nil
}

// normalize routes format-0 events into conductor/content-track shape,
// and for format-1+ input treats track 0 as the conductor by convention.
func normalize(format int, tracks []Track) *Sequence {
	if len(tracks) == 0 {
		return &Sequence{Conductor: Track{}.withTrackEnd()}
	}

	if format == 0 {
		return normalizeFormat0(tracks[0])
	}

	conductor := tracks[0].withTrackEnd()
	content := make([]Track, len(tracks)-1)
	for i, t := range tracks[1:] {
		content[i] = t.withTrackEnd()
	}
	return &Sequence{Conductor: conductor, Tracks: content}
}

func normalizeFormat0(t Track) *Sequence {
	conductorEvents := PreserveDeltaTimes(t.Events, func(e Event) bool { return isConductorTag(e.Tag) })
	contentEvents := PreserveDeltaTimes(t.Events, func(e Event) bool { return !isConductorTag(e.Tag) })

	conductor := Track{Events: conductorEvents}.withTrackEnd()
	content := Track{Events: contentEvents}.withTrackEnd()
	return &Sequence{Conductor: conductor, Tracks: []Track{content}}
}

func isConductorTag(tag Tag) bool {
	switch tag {
	case SeqName, SetTempo, TimeSignature, KeySignature, TrackEnd:
		return true
	default:
		return false
	}
}
