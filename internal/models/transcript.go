package models

// TranscriptSegment is one speaker turn from a diarization-capable engine.
// Order of segments matches chronological order in the source audio.
type TranscriptSegment struct {
	Speaker string // optional, empty when the engine gave no label
	Text    string
}

// Transcript is what a transcription engine hands back: speaker segments
// when diarization data exists, otherwise the plain transcript text.
type Transcript struct {
	Segments []TranscriptSegment
	Text     string
}
