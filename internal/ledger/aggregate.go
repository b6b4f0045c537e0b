// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"math"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Placeholder split of the overall error rate into FAR and FRR.
const (
	estimatedFARShare = 0.4
	estimatedFRRShare = 0.6
)

// sweepStep is the threshold resolution of the EER search.
const sweepStep = 0.5

// Summarize aggregates entries into system statistics. User counts are left
// at zero.
func Summarize(entries []models.LedgerEntry) models.SystemStatistics {
	var (
		stats     models.SystemStatistics
		distances []float64
	)

	for _, e := range entries {
		stats.TotalAuthentications++
		if e.Verified {
			stats.SuccessfulAuthentications++
		}
		if e.Distance != nil {
			distances = append(distances, *e.Distance)
		}
	}

	stats.FailedAuthentications = stats.TotalAuthentications - stats.SuccessfulAuthentications
	stats.SuccessRate = SuccessRate(stats.SuccessfulAuthentications, stats.TotalAuthentications)
	stats.Distance = SummarizeDistances(distances)
	stats.Estimated = EstimateErrorRates(stats.SuccessfulAuthentications, stats.TotalAuthentications)
	stats.Measured = Measure(entries)

	return stats
}

// SuccessRate returns successful/total as a percentage, 0 when total is 0.
func SuccessRate(successful, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(successful) / float64(total) * 100
}

// EstimateErrorRates splits the failure percentage into placeholder FAR, FRR
// and EER values. With no attempts all rates are 0.
func EstimateErrorRates(successful, total int64) models.ErrorRates {
	if total <= 0 {
		return models.ErrorRates{Estimated: true}
	}
	errRate := 100 - SuccessRate(successful, total)
	return models.ErrorRates{
		FAR:       errRate * estimatedFARShare,
		FRR:       errRate * estimatedFRRShare,
		EER:       errRate / 2,
		Estimated: true,
	}
}

// SummarizeDistances returns count, mean, sample standard deviation and range.
func SummarizeDistances(ds []float64) models.DistanceSummary {
	if len(ds) == 0 {
		return models.DistanceSummary{}
	}

	summary := models.DistanceSummary{
		Count: int64(len(ds)),
		Mean:  stat.Mean(ds, nil),
		Min:   floats.Min(ds),
		Max:   floats.Max(ds),
	}
	if len(ds) > 1 {
		summary.StdDev = stat.StdDev(ds, nil)
	}
	return summary
}

// Measure computes error rates from labeled trials. It returns nil when no
// entry carries a trial label and a distance.
func Measure(entries []models.LedgerEntry) *models.MeasuredRates {
	var genuine, impostor []float64
	var falseRejects, falseAccepts int64

	for _, e := range entries {
		if e.Distance == nil {
			continue
		}
		switch e.TrialLabel {
		case models.TrialGenuine:
			genuine = append(genuine, *e.Distance)
			if !e.Verified {
				falseRejects++
			}
		case models.TrialImpostor:
			impostor = append(impostor, *e.Distance)
			if e.Verified {
				falseAccepts++
			}
		}
	}

	if len(genuine) == 0 && len(impostor) == 0 {
		return nil
	}

	m := &models.MeasuredRates{
		GenuineTrials:  int64(len(genuine)),
		ImpostorTrials: int64(len(impostor)),
		FAR:            SuccessRate(falseAccepts, int64(len(impostor))),
		FRR:            SuccessRate(falseRejects, int64(len(genuine))),
	}
	if len(genuine) > 0 && len(impostor) > 0 {
		m.EER, m.EERThreshold = equalErrorRate(genuine, impostor)
	}
	return m
}

// equalErrorRate sweeps the allowed threshold range and returns the rate and
// threshold where FAR and FRR are closest. Ties keep the lower threshold.
func equalErrorRate(genuine, impostor []float64) (float64, float64) {
	best, bestGap, bestT := 0.0, math.Inf(1), biometric.MinThreshold

	for t := biometric.MinThreshold; t <= biometric.MaxThreshold; t += sweepStep {
		var fa, fr int
		for _, d := range impostor {
			if biometric.Decide(d, t) {
				fa++
			}
		}
		for _, d := range genuine {
			if !biometric.Decide(d, t) {
				fr++
			}
		}

		far := float64(fa) / float64(len(impostor)) * 100
		frr := float64(fr) / float64(len(genuine)) * 100
		if gap := math.Abs(far - frr); gap < bestGap {
			best, bestGap, bestT = (far+frr)/2, gap, t
		}
	}

	return best, bestT
}
