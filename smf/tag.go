package smf

// Tag identifies the kind of an Event. Payload shape follows the table in
// spec §6: channel-voice tags carry (Channel, Data1, Data2); SysEx and
// UnknownMeta carry Data; UnknownStatus carries StatusByte; meta tags carry
// Data plus, for some, a decoded field (SetTempo -> MicrosecondsPerQuarter).
type Tag int

const (
	NoteOff Tag = iota
	NoteOn
	PolyPressure
	Controller
	ProgramChange
	ChannelPressure
	PitchBend

	SysEx

	SeqNumber
	Text
	Copyright
	SeqName
	Instrument
	Lyric
	Marker
	Cue
	MidiChanPrefix
	TrackEnd
	SetTempo
	SmpteOffset
	TimeSignature
	KeySignature
	SequencerSpecific
	UnknownMeta

	UnknownStatus
)

// IsChannelVoice reports whether t carries a (channel, data1, data2)
// payload on the wire as one of the 0x80-0xEF status kinds.
func (t Tag) IsChannelVoice() bool {
	return t >= NoteOff && t <= PitchBend
}

// IsMeta reports whether t is one of the 0xFF meta event kinds, including
// the unrecognized-code passthrough.
func (t Tag) IsMeta() bool {
	return t >= SeqNumber && t <= UnknownMeta
}

func (t Tag) String() string {
	switch t {
	case NoteOff:
		return "note_off"
	case NoteOn:
		return "note_on"
	case PolyPressure:
		return "poly_pressure"
	case Controller:
		return "controller"
	case ProgramChange:
		return "program_change"
	case ChannelPressure:
		return "channel_pressure"
	case PitchBend:
		return "pitch_bend"
	case SysEx:
		return "sysex"
	case SeqNumber:
		return "seq_num"
	case Text:
		return "text"
	case Copyright:
		return "copyright"
	case SeqName:
		return "seq_name"
	case Instrument:
		return "instrument"
	case Lyric:
		return "lyric"
	case Marker:
		return "marker"
	case Cue:
		return "cue"
	case MidiChanPrefix:
		return "midi_chan_prefix"
	case TrackEnd:
		return "track_end"
	case SetTempo:
		return "set_tempo"
	case SmpteOffset:
		return "smpte"
	case TimeSignature:
		return "time_signature"
	case KeySignature:
		return "key_signature"
	case SequencerSpecific:
		return "sequencer_specific"
	case UnknownMeta:
		return "unknown_meta"
	case UnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

// metaCode maps a recognized meta Tag to its wire type code (§6 table).
var metaCode = map[Tag]uint8{
	SeqNumber:         0x00,
	Text:              0x01,
	Copyright:         0x02,
	SeqName:           0x03,
	Instrument:        0x04,
	Lyric:             0x05,
	Marker:            0x06,
	Cue:               0x07,
	MidiChanPrefix:    0x20,
	TrackEnd:          0x2F,
	SetTempo:          0x51,
	SmpteOffset:       0x54,
	TimeSignature:     0x58,
	KeySignature:      0x59,
	SequencerSpecific: 0x7F,
}

// codeMeta is the inverse of metaCode.
var codeMeta = func() map[uint8]Tag {
	m := make(map[uint8]Tag, len(metaCode))
	for tag, code := range metaCode {
		m[code] = tag
	}
	return m
}()

// channelVoiceKind maps a channel-voice Tag to its upper status nibble.
var channelVoiceKind = map[Tag]uint8{
	NoteOff:          0x8,
	NoteOn:           0x9,
	PolyPressure:     0xA,
	Controller:       0xB,
	ProgramChange:    0xC,
	ChannelPressure:  0xD,
	PitchBend:        0xE,
}

var kindChannelVoice = func() map[uint8]Tag {
	m := make(map[uint8]Tag, len(channelVoiceKind))
	for tag, kind := range channelVoiceKind {
		m[kind] = tag
	}
	return m
}()

// channelVoiceDataLen reports how many data bytes follow the status byte
// (or an inherited running-status byte) for a channel-voice kind nibble.
func channelVoiceDataLen(kind uint8) int {
	switch kind {
	case 0xC, 0xD: // program-change, channel-pressure
		return 1
	default:
		return 2
	}
}
