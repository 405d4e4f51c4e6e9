package logging

import (
	"time"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain helpers

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func SegmentID(id uint64) Field {
	return Uint64("segment_id", id)
}

func NetworkID(id uint64) Field {
	return Uint64("network_id", id)
}

// Position logs a grid cell as its "(x,y)" / "(x,y,z)" form.
func Position(p grid.Point) Field {
	return String("position", p.String())
}

func Facing(f grid.Facing) Field {
	return String("facing", f.String())
}

func Count(n int) Field {
	return Int("count", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
