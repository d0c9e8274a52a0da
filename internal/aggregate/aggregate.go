// Package aggregate computes per-channel statistics across test blocks.
package aggregate

import "github.com/jackzampolin/thermomap/internal/logparse"

// Average returns the arithmetic mean temperature per channel across every
// block the channel appears in. Channels absent from all blocks are absent
// from the result; nothing is imputed.
func Average(blocks []logparse.Block) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, b := range blocks {
		for chnl, temp := range b.Temps {
			sums[chnl] += temp
			counts[chnl]++
		}
	}

	avgs := make(map[int]float64, len(sums))
	for chnl, sum := range sums {
		avgs[chnl] = sum / float64(counts[chnl])
	}
	return avgs
}
