package haversine

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// WriteJSON serializes corpus as the {"pairs":[...],"avg":...,"count":...}
// document spec §6 describes, with every number at 16 fractional
// digits in plain decimal notation so the hand-written decimal-only
// parser can always decode it. The decoded value is not guaranteed to
// be bit-identical to the value written.
func WriteJSON(w io.Writer, corpus Corpus) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(`{"pairs":[`)
	for i, p := range corpus.Pairs {
		if i > 0 {
			bw.WriteByte(',')
		}
		fmt.Fprintf(bw, `{"x0":%s,"y0":%s,"x1":%s,"y1":%s}`,
			formatNumber(p.X0), formatNumber(p.Y0), formatNumber(p.X1), formatNumber(p.Y1))
	}
	fmt.Fprintf(bw, `],"avg":%s,"count":%d}`, formatNumber(corpus.Avg), len(corpus.Pairs))

	return bw.Flush()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 16, 64)
}

// WriteAnswer writes the little-endian binary companion file: u64
// count, then per-pair f64 x0,y0,x1,y1,distance, then a trailing f64
// avg.
func WriteAnswer(w io.Writer, corpus Corpus) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(corpus.Pairs))); err != nil {
		return fmt.Errorf("haversine: writing count: %w", err)
	}
	for _, p := range corpus.Pairs {
		values := [5]float64{p.X0, p.Y0, p.X1, p.Y1, p.Distance}
		if err := binary.Write(bw, binary.LittleEndian, values); err != nil {
			return fmt.Errorf("haversine: writing pair: %w", err)
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, corpus.Avg); err != nil {
		return fmt.Errorf("haversine: writing trailing average: %w", err)
	}

	return bw.Flush()
}

// Answer is the decoded form of an answer file: the per-pair reference
// distances in file order, plus the trailing average.
type Answer struct {
	Distances []float64
	Avg       float64
}

// ReadAnswer decodes an answer file written by WriteAnswer.
func ReadAnswer(r io.Reader) (Answer, error) {
	br := bufio.NewReader(r)

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return Answer{}, fmt.Errorf("haversine: reading count: %w", err)
	}

	distances := make([]float64, count)
	for i := range distances {
		var values [5]float64
		if err := binary.Read(br, binary.LittleEndian, &values); err != nil {
			return Answer{}, fmt.Errorf("haversine: reading pair %d: %w", i, err)
		}
		distances[i] = values[4]
	}

	var avg float64
	if err := binary.Read(br, binary.LittleEndian, &avg); err != nil {
		return Answer{}, fmt.Errorf("haversine: reading trailing average: %w", err)
	}

	return Answer{Distances: distances, Avg: avg}, nil
}
