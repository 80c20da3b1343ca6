package chat

import "testing"

func TestParseFrameSystem(t *testing.T) {
	for _, raw := range []string{
		`{"type":"connection_established"}`,
		`{"is_system":true,"message":"연결되었습니다"}`,
	} {
		frame, err := ParseFrame([]byte(raw))
		if err != nil {
			t.Fatalf("ParseFrame(%s) error: %v", raw, err)
		}
		if frame.Kind != FrameSystem {
			t.Errorf("ParseFrame(%s) kind = %v, want FrameSystem", raw, frame.Kind)
		}
	}
}

func TestParseFrameStreamingDelta(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"is_bot":true,"is_streaming":true,"message":"남산"}`))
	if err != nil {
		t.Fatalf("ParseFrame error: %v", err)
	}
	if frame.Kind != FrameDelta || !frame.FromBot || frame.IsFinal {
		t.Errorf("got %+v, want streaming bot delta", frame)
	}
	if frame.Message != "남산" {
		t.Errorf("message = %q", frame.Message)
	}
}

func TestParseFrameFinalDelta(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"is_bot":true,"message":"done"}`))
	if err != nil {
		t.Fatalf("ParseFrame error: %v", err)
	}
	if !frame.IsFinal {
		t.Error("frame without is_streaming should be final")
	}
}

func TestParseFrameUserEcho(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"is_bot":false,"message":"hello"}`))
	if err != nil {
		t.Fatalf("ParseFrame error: %v", err)
	}
	if frame.Kind != FrameDelta || frame.FromBot {
		t.Errorf("got %+v, want user echo delta", frame)
	}
}

func TestParseFrameMalformed(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"message":"no role at all"}`,
	} {
		if _, err := ParseFrame([]byte(raw)); err == nil {
			t.Errorf("ParseFrame(%s) expected error", raw)
		}
	}
}

func TestEncodeOutbound(t *testing.T) {
	data, err := EncodeOutbound("서울 맛집 추천해줘")
	if err != nil {
		t.Fatalf("EncodeOutbound error: %v", err)
	}
	want := `{"message":"서울 맛집 추천해줘"}`
	if string(data) != want {
		t.Errorf("EncodeOutbound = %s, want %s", data, want)
	}
}
