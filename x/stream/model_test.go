package stream

import (
	"math"
	"testing"

	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/weavetest"
	"github.com/paystream/paystream/weavetest/assert"
)

func TestStreamAvailable(t *testing.T) {
	cases := map[string]struct {
		stream Stream
		now    int64
		want   int64
	}{
		"before start": {
			stream: Stream{TotalAmount: 1000, Duration: 100, StartTime: 50, IsActive: true},
			now:    20,
			want:   0,
		},
		"at start": {
			stream: Stream{TotalAmount: 1000, Duration: 100, IsActive: true},
			now:    0,
			want:   0,
		},
		"half way": {
			stream: Stream{TotalAmount: 1000, Duration: 100, IsActive: true},
			now:    50,
			want:   500,
		},
		"rounds down": {
			stream: Stream{TotalAmount: 10, Duration: 3, IsActive: true},
			now:    1,
			want:   3,
		},
		"half way with withdrawn": {
			stream: Stream{TotalAmount: 1000, Duration: 100, Withdrawn: 300, IsActive: true},
			now:    50,
			want:   200,
		},
		"after end": {
			stream: Stream{TotalAmount: 1000, Duration: 100, Withdrawn: 500, IsActive: true},
			now:    1000,
			want:   500,
		},
		"everything withdrawn": {
			stream: Stream{TotalAmount: 1000, Duration: 100, Withdrawn: 1000, IsActive: true},
			now:    1000,
			want:   0,
		},
		"paused": {
			stream: Stream{TotalAmount: 1000, Duration: 100, PausedAt: 10},
			now:    50,
			want:   0,
		},
		"cancelled": {
			stream: Stream{TotalAmount: 1000, Duration: 100, Cancelled: true},
			now:    50,
			want:   0,
		},
		"paused time is not counted": {
			stream: Stream{TotalAmount: 1000, Duration: 100, PausedFor: 30, IsActive: true},
			now:    50,
			want:   200,
		},
		"step release": {
			stream: Stream{TotalAmount: 1000, Duration: 100, Schedule: Schedule{Interval: 25}, IsActive: true},
			now:    49,
			want:   250,
		},
		"step release at the end": {
			stream: Stream{TotalAmount: 1000, Duration: 90, Schedule: Schedule{Interval: 25}, IsActive: true},
			now:    99,
			want:   1000,
		},
		"step release exactly at the end": {
			stream: Stream{TotalAmount: 1000, Duration: 90, Schedule: Schedule{Interval: 25}, IsActive: true},
			now:    90,
			want:   1000,
		},
		"step release just before the end": {
			stream: Stream{TotalAmount: 1000, Duration: 90, Schedule: Schedule{Interval: 25}, IsActive: true},
			now:    89,
			want:   833,
		},
		"block unit": {
			stream: Stream{TotalAmount: 100, Duration: 10, StartTime: 99999, StartHeight: 20, Schedule: Schedule{Unit: Blocks}, IsActive: true},
			now:    25,
			want:   50,
		},
		"large values do not overflow": {
			stream: Stream{TotalAmount: math.MaxInt64, Duration: math.MaxInt64 / 2, IsActive: true},
			now:    math.MaxInt64 / 4,
			want:   math.MaxInt64/2 - 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.stream.Available(tc.now))
		})
	}
}

func TestStreamAvailableBounds(t *testing.T) {
	streams := []Stream{
		{TotalAmount: 1000, Duration: 100, IsActive: true},
		{TotalAmount: 7, Duration: 1000, Withdrawn: 3, IsActive: true},
		{TotalAmount: 1e12, Duration: 31, StartTime: 17, PausedFor: 5, IsActive: true},
		{TotalAmount: 999, Duration: 77, Schedule: Schedule{Interval: 10}, IsActive: true},
	}
	for i, s := range streams {
		var prev int64
		for now := int64(-5); now < 1200; now++ {
			got := s.Available(now)
			if got < 0 || got > s.TotalAmount-s.Withdrawn {
				t.Fatalf("stream %d: available %d out of range at %d", i, got, now)
			}
			if got < prev {
				t.Fatalf("stream %d: available decreased from %d to %d at %d", i, prev, got, now)
			}
			prev = got
		}
		assert.Equal(t, s.TotalAmount-s.Withdrawn, prev)

		// The whole remainder is available as soon as the duration passed.
		end := s.start() + s.PausedFor + s.Duration
		assert.Equal(t, s.TotalAmount-s.Withdrawn, s.Available(end))
	}
}

func TestStreamValidate(t *testing.T) {
	sender := weavetest.NewCondition().Address()
	recipient := weavetest.NewCondition().Address()
	valid := func() Stream {
		return Stream{
			Sender:      sender,
			Recipient:   recipient,
			TotalAmount: 10,
			Duration:    5,
			StartTime:   1,
			IsActive:    true,
		}
	}

	cases := map[string]struct {
		mutate func(*Stream)
		field  string
		want   *errors.Error
	}{
		"valid": {
			mutate: func(*Stream) {},
		},
		"missing recipient": {
			mutate: func(s *Stream) { s.Recipient = nil },
			field:  "Recipient",
			want:   errors.ErrInvalidInput,
		},
		"withdrawn above total": {
			mutate: func(s *Stream) { s.Withdrawn = 11 },
			field:  "Withdrawn",
			want:   errors.ErrInvalidModel,
		},
		"cancelled and active": {
			mutate: func(s *Stream) { s.Cancelled = true },
			field:  "IsActive",
			want:   errors.ErrInvalidModel,
		},
		"unknown unit": {
			mutate: func(s *Stream) { s.Schedule.Unit = 7 },
			field:  "Schedule",
			want:   ErrInvalidParameters,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			err := s.Validate()
			if tc.want == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.field, tc.want)
		})
	}
}

func TestStreamRoundTrip(t *testing.T) {
	s := Stream{
		Sender:      weavetest.NewCondition().Address(),
		Recipient:   weavetest.NewCondition().Address(),
		TotalAmount: 1000,
		Duration:    100,
		Schedule:    Schedule{Unit: Blocks, Interval: 4},
		StartHeight: 12,
		Withdrawn:   100,
		PausedAt:    40,
		PausedFor:   3,
		Memo:        "rent",
	}
	raw, err := s.Marshal()
	assert.Nil(t, err)
	var got Stream
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, s, got)
}

func TestStreamIDString(t *testing.T) {
	assert.Equal(t, "5", StreamID(weavetest.SequenceID(5)).String())
	assert.Equal(t, "(invalid)", StreamID([]byte{1}).String())
}
