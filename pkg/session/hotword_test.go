package session

import "testing"

func TestDispatcherMatch(t *testing.T) {
	d := NewDispatcher()

	tests := []struct {
		name    string
		text    string
		want    Command
		matched bool
	}{
		{"image trigger exact", "撮影して", CommandCaptureImage, true},
		{"image trigger embedded", "ねえ、写真撮ってくれる？", CommandCaptureImage, true},
		{"camera trigger", "カメラを起動して", CommandCaptureImage, true},
		{"audio trigger", "録音して", CommandCaptureAudio, true},
		{"audio start", "録音開始をお願い", CommandCaptureAudio, true},
		{"audio stop", "録音停止", CommandCaptureAudio, true},
		{"no trigger", "今日の天気はどうですか", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := d.Match(tt.text)
			if ok != tt.matched {
				t.Fatalf("Match(%q) matched = %v, want %v", tt.text, ok, tt.matched)
			}
			if ok && m.Command != tt.want {
				t.Errorf("Match(%q).Command = %v, want %v", tt.text, m.Command, tt.want)
			}
		})
	}
}

func TestDispatcherImageBeforeAudio(t *testing.T) {
	// An utterance containing triggers from both sets resolves to the
	// image command, which is checked first.
	d := NewDispatcher()
	m, ok := d.Match("カメラで録音して")
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Command != CommandCaptureImage {
		t.Errorf("Command = %v, want %v", m.Command, CommandCaptureImage)
	}
}

func TestDispatcherCaseInsensitive(t *testing.T) {
	d := NewDispatcherWithTriggers([]string{"Take A Photo"}, []string{"Start Recording"})
	m, ok := d.Match("please TAKE a photo now")
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Command != CommandCaptureImage {
		t.Errorf("Command = %v, want %v", m.Command, CommandCaptureImage)
	}
	if _, ok := d.Match("sTART recordinG"); !ok {
		t.Error("expected audio trigger to match regardless of case")
	}
}

func TestCommandString(t *testing.T) {
	if got := CommandCaptureImage.String(); got != "capture-image" {
		t.Errorf("CommandCaptureImage.String() = %q", got)
	}
	if got := CommandCaptureAudio.String(); got != "capture-audio" {
		t.Errorf("CommandCaptureAudio.String() = %q", got)
	}
}
