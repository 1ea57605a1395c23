package cdss

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted by the scorer.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Risk tiers produced by the scorer.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// ClinicalInput is the patient snapshot submitted for risk scoring.
// Pointer vitals/lifestyle fields distinguish "not evaluated" from "normal":
// a nil value skips the corresponding sub-analysis entirely.
type ClinicalInput struct {
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	WeightKG float64 `json:"weight_kg"`
	HeightCM float64 `json:"height_cm"`

	HasHypertension bool `json:"has_hypertension"`
	HasDiabetes     bool `json:"has_diabetes"`
	OnMedication    bool `json:"on_medication"`

	Headache          bool    `json:"headache"`
	Dizziness         bool    `json:"dizziness"`
	BlurredVision     bool    `json:"blurred_vision"`
	Palpitations      bool    `json:"palpitations"`
	Fatigue           bool    `json:"fatigue"`
	ChestPain         bool    `json:"chest_pain"`
	FrequentThirst    bool    `json:"frequent_thirst"`
	LossOfAppetite    bool    `json:"loss_of_appetite"`
	FrequentUrination bool    `json:"frequent_urination"`
	NoSymptoms        bool    `json:"no_symptoms"`
	OtherSymptoms     *string `json:"other_symptoms,omitempty"`

	SystolicMMHG   *int     `json:"systolic_mmhg,omitempty"`
	DiastolicMMHG  *int     `json:"diastolic_mmhg,omitempty"`
	BloodSugarMGDL *float64 `json:"blood_sugar_mgdl,omitempty"`
	HeartRateBPM   *int     `json:"heart_rate_bpm,omitempty"`

	SleepHours            *float64 `json:"sleep_hours,omitempty"`
	ExerciseMinutesPerDay *int     `json:"exercise_minutes_per_day,omitempty"`
	EatsUnhealthy         bool     `json:"eats_unhealthy"`
	Smokes                bool     `json:"smokes"`
	ConsumesAlcohol       bool     `json:"consumes_alcohol"`
	SkipsMedication       bool     `json:"skips_medication"`
}

// ClinicalAssessment is the scorer output. Status strings are empty when the
// corresponding vital was not supplied.
type ClinicalAssessment struct {
	Analysis            string   `json:"analysis"`
	Recommendations     []string `json:"recommendations"`
	RiskLevel           string   `json:"risk_level"`
	BMI                 float64  `json:"bmi"`
	BMICategory         string   `json:"bmi_category"`
	BloodPressureStatus string   `json:"blood_pressure_status,omitempty"`
	BloodSugarStatus    string   `json:"blood_sugar_status,omitempty"`
	HeartRateStatus     string   `json:"heart_rate_status,omitempty"`
}

// Assessment maps to the health_assessment table. It is the audit record of a
// scoring call: input snapshot plus the full scorer output.
type Assessment struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	PatientID           *uuid.UUID    `db:"patient_id" json:"patient_id,omitempty"`
	Input               ClinicalInput `db:"input" json:"input"`
	Analysis            string        `db:"analysis" json:"analysis"`
	Recommendations     []string      `db:"recommendations" json:"recommendations"`
	RiskLevel           string        `db:"risk_level" json:"risk_level"`
	BMI                 float64       `db:"bmi" json:"bmi"`
	BMICategory         string        `db:"bmi_category" json:"bmi_category"`
	BloodPressureStatus string        `db:"blood_pressure_status" json:"blood_pressure_status,omitempty"`
	BloodSugarStatus    string        `db:"blood_sugar_status" json:"blood_sugar_status,omitempty"`
	HeartRateStatus     string        `db:"heart_rate_status" json:"heart_rate_status,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
}
