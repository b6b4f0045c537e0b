// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SystemStatistics is a consistent snapshot of all recorded attempts.
type SystemStatistics struct {
	// TotalUsers and ActiveUsers come from the user store and are zero when
	// the snapshot was taken from a ledger alone.
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`

	TotalAuthentications      int64 `json:"total_authentications"`
	SuccessfulAuthentications int64 `json:"successful_authentications"`
	FailedAuthentications     int64 `json:"failed_authentications"`

	// SuccessRate is a percentage, 0 when nothing was recorded.
	SuccessRate float64 `json:"success_rate"`

	Distance DistanceSummary `json:"distance"`

	Estimated ErrorRates     `json:"estimated"`
	Measured  *MeasuredRates `json:"measured,omitempty"`
}

// DistanceSummary describes the distances of attempts that produced one.
type DistanceSummary struct {
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ErrorRates are percentages derived from the overall failure rate. They are
// a placeholder, not a measurement, and Estimated is always true.
type ErrorRates struct {
	FAR       float64 `json:"far"`
	FRR       float64 `json:"frr"`
	EER       float64 `json:"eer"`
	Estimated bool    `json:"estimated"`
}

// MeasuredRates are computed from attempts labeled genuine or impostor.
// Rates are percentages at the thresholds the attempts were decided with;
// EER comes from sweeping the threshold over the allowed range.
type MeasuredRates struct {
	GenuineTrials  int64   `json:"genuine_trials"`
	ImpostorTrials int64   `json:"impostor_trials"`
	FAR            float64 `json:"far"`
	FRR            float64 `json:"frr"`
	EER            float64 `json:"eer"`
	EERThreshold   float64 `json:"eer_threshold"`
}

// UserStatistics summarizes the attempts recorded for one user.
type UserStatistics struct {
	UserID             int64   `json:"user_id"`
	Username           string  `json:"username"`
	TotalAttempts      int64   `json:"total_attempts"`
	SuccessfulAttempts int64   `json:"successful_attempts"`
	SuccessRate        float64 `json:"success_rate"`

	// Distance fields are nil when the user has no biometric attempts.
	AverageDistance *float64 `json:"avg_hamming_distance"`
	BestDistance    *float64 `json:"best_match"`
	WorstDistance   *float64 `json:"worst_match"`
}

// StatsResponse is the payload of the statistics endpoint.
type StatsResponse struct {
	System SystemStatistics `json:"system"`
	User   UserStatistics   `json:"user"`
}

// Profile is a user with their most recent attempts.
type Profile struct {
	User           User          `json:"user"`
	RecentAttempts []LedgerEntry `json:"recent_attempts"`
}
