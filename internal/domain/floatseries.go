package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// FloatSeries is a float slice whose NaN entries serialize as JSON null.
// Rolling indicators use NaN for "window not yet full"; null is the only
// faithful JSON rendering of that, and it survives a cache round trip.
type FloatSeries []float64

func (s FloatSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s *FloatSeries) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FloatSeries, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}
