package audio

import "github.com/sms-core/smsemu/core/sink"

// FakeSN76489 discards all writes and generates no samples, per spec.md
// 4.5; core.New uses it when core.Config.SampleRateHz is 0, for hosts with
// no audio sink at all.
type FakeSN76489 struct{}

func (FakeSN76489) Write(uint8) {}

func (FakeSN76489) Generate(int, sink.AudioSink) error { return nil }

var _ Generator = FakeSN76489{}
var _ Generator = (*PSG)(nil)
