package logging

import (
	"strconv"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
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

// Mask domain fields

func Component(name string) Field {
	return String("component", name)
}

func Phase(name string) Field {
	return String("phase", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Cell(id int) Field {
	return Int("cell", id)
}

func Layer(n int) Field {
	return Int("layer", n)
}

func Boundary(i int) Field {
	return Int("boundary", i)
}

func Strategy(name string) Field {
	return String("strategy", name)
}

func Count(n int) Field {
	return Int("count", n)
}

func Elapsed(d time.Duration) Field {
	return Duration("elapsed", d)
}

// Histogram renders a class -> count map with string keys so it survives JSON encoding
func Histogram(key string, counts map[int]int) Field {
	out := make(map[string]int, len(counts))
	for class, n := range counts {
		out[strconv.Itoa(class)] = n
	}
	return Field{Key: key, Value: out}
}
