package cdss

import (
	"fmt"
	"math"
	"strings"
)

// vitalRule is one band of an ordered tiering chain. Bands are not mutually
// exclusive; evaluation stops at the first match, so rule order is part of
// the clinical contract and must not be rearranged.
type vitalRule[T int | float64] struct {
	match  func(T) bool
	status string
	factor string
}

type bpRule struct {
	match  func(systolic, diastolic int) bool
	status string
	factor string
}

var bloodPressureRules = []bpRule{
	{func(s, d int) bool { return s >= 180 || d >= 120 }, "too high", "critically high blood pressure"},
	{func(s, d int) bool { return s >= 140 || d >= 90 }, "high", "high blood pressure"},
	{func(s, d int) bool { return (s >= 120 && s < 140) || (d >= 80 && d < 90) }, "borderline high", "elevated blood pressure"},
	{func(s, d int) bool { return s < 90 && d < 60 }, "too low", "low blood pressure"},
	{func(s, d int) bool { return s < 100 && d < 65 }, "borderline low", "somewhat low blood pressure"},
}

var bloodSugarRules = []vitalRule[float64]{
	{func(v float64) bool { return v >= 200 }, "too high", "critically high blood sugar"},
	{func(v float64) bool { return v >= 126 }, "high", "high blood sugar"},
	{func(v float64) bool { return v >= 100 && v < 126 }, "borderline high", "elevated blood sugar"},
	{func(v float64) bool { return v < 70 }, "too low", "low blood sugar"},
	{func(v float64) bool { return v >= 70 && v < 80 }, "borderline low", "somewhat low blood sugar"},
}

var heartRateRules = []vitalRule[int]{
	{func(v int) bool { return v > 100 }, "elevated", "elevated heart rate"},
	{func(v int) bool { return v < 60 }, "low", "low heart rate"},
}

func evalBloodPressure(systolic, diastolic int) (status, factor string) {
	for _, r := range bloodPressureRules {
		if r.match(systolic, diastolic) {
			return r.status, r.factor
		}
	}
	return "normal", ""
}

func evalVital[T int | float64](rules []vitalRule[T], v T) (status, factor string) {
	for _, r := range rules {
		if r.match(v) {
			return r.status, r.factor
		}
	}
	return "normal", ""
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal weight"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// symptomLabels pairs each symptom flag accessor with its reporting label.
var symptomLabels = []struct {
	set   func(ClinicalInput) bool
	label string
}{
	{func(in ClinicalInput) bool { return in.Headache }, "headache"},
	{func(in ClinicalInput) bool { return in.Dizziness }, "dizziness"},
	{func(in ClinicalInput) bool { return in.BlurredVision }, "blurred vision"},
	{func(in ClinicalInput) bool { return in.Palpitations }, "palpitations"},
	{func(in ClinicalInput) bool { return in.Fatigue }, "fatigue"},
	{func(in ClinicalInput) bool { return in.ChestPain }, "chest pain"},
	{func(in ClinicalInput) bool { return in.FrequentThirst }, "frequent thirst"},
	{func(in ClinicalInput) bool { return in.LossOfAppetite }, "loss of appetite"},
	{func(in ClinicalInput) bool { return in.FrequentUrination }, "frequent urination"},
	{func(in ClinicalInput) bool { return in.NoSymptoms }, "no symptoms"},
}

func symptomList(in ClinicalInput) []string {
	var symptoms []string
	for _, s := range symptomLabels {
		if s.set(in) {
			symptoms = append(symptoms, s.label)
		}
	}
	if in.OtherSymptoms != nil && *in.OtherSymptoms != "" {
		symptoms = append(symptoms, *in.OtherSymptoms)
	}
	return symptoms
}

// Priority and fallback recommendation texts.
const (
	recChestPain     = "Seek immediate medical attention for chest pain."
	recHighRisk      = "Schedule an appointment with a healthcare provider soon."
	recHealthyHabits = "Continue with healthy lifestyle habits and regular check-ups."
)

// Score maps a patient snapshot to a narrative analysis, an ordered
// recommendation list and a risk tier. It is pure and deterministic: no I/O,
// no shared state, identical input always yields identical output.
//
// Preconditions (enforced by the service layer, not here): age, weight and
// height are positive and gender is a known value. A zero height reaches the
// BMI division unguarded.
func Score(in ClinicalInput) ClinicalAssessment {
	var out ClinicalAssessment
	var factors []string

	heightM := in.HeightCM / 100
	bmi := in.WeightKG / (heightM * heightM)
	// Categorize the computed value; rounding is presentation only.
	out.BMI = math.Round(bmi*10) / 10
	out.BMICategory = bmiCategory(bmi)
	if out.BMICategory == "obese" {
		factors = append(factors, "obesity")
	}

	// Blood pressure is only evaluated when both readings are present.
	if in.SystolicMMHG != nil && in.DiastolicMMHG != nil {
		status, factor := evalBloodPressure(*in.SystolicMMHG, *in.DiastolicMMHG)
		out.BloodPressureStatus = status
		if factor != "" {
			factors = append(factors, factor)
		}
	}
	if in.BloodSugarMGDL != nil {
		status, factor := evalVital(bloodSugarRules, *in.BloodSugarMGDL)
		out.BloodSugarStatus = status
		if factor != "" {
			factors = append(factors, factor)
		}
	}
	if in.HeartRateBPM != nil {
		status, factor := evalVital(heartRateRules, *in.HeartRateBPM)
		out.HeartRateStatus = status
		if factor != "" {
			factors = append(factors, factor)
		}
	}

	if in.HasHypertension {
		factors = append(factors, "history of hypertension")
	}
	if in.HasDiabetes {
		factors = append(factors, "history of diabetes")
	}
	if in.Smokes {
		factors = append(factors, "smoking")
	}
	if in.ConsumesAlcohol {
		factors = append(factors, "alcohol consumption")
	}
	if in.EatsUnhealthy {
		factors = append(factors, "unhealthy diet")
	}
	if in.SkipsMedication && in.OnMedication {
		factors = append(factors, "medication non-compliance")
	}
	if in.ExerciseMinutesPerDay != nil && *in.ExerciseMinutesPerDay < 30 {
		factors = append(factors, "insufficient exercise")
	}
	if in.SleepHours != nil && (*in.SleepHours < 7 || *in.SleepHours > 9) {
		factors = append(factors, "irregular sleep")
	}

	symptoms := symptomList(in)

	out.RiskLevel = RiskLow
	switch {
	case len(factors) >= 3 || containsString(symptoms, "chest pain"):
		out.RiskLevel = RiskHigh
	case len(factors) >= 1:
		out.RiskLevel = RiskModerate
	}

	out.Analysis = buildNarrative(in, out, symptoms, factors)
	out.Recommendations = buildRecommendations(in, out, symptoms)
	return out
}

func buildNarrative(in ClinicalInput, out ClinicalAssessment, symptoms, factors []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The patient is a %d-year-old %s with a BMI of %.1f (%s).",
		in.Age, in.Gender, out.BMI, out.BMICategory)

	var history []string
	if in.HasHypertension {
		history = append(history, "hypertension")
	}
	if in.HasDiabetes {
		history = append(history, "diabetes")
	}
	if len(history) > 0 {
		fmt.Fprintf(&b, " Reported medical history includes %s.", strings.Join(history, " and "))
	}
	if in.OnMedication {
		b.WriteString(" The patient is currently on medication.")
	}
	if len(symptoms) > 0 {
		fmt.Fprintf(&b, " Reported symptoms: %s.", strings.Join(symptoms, ", "))
	}
	if in.SystolicMMHG != nil && in.DiastolicMMHG != nil {
		fmt.Fprintf(&b, " Blood pressure is %d/%d mmHg (%s).",
			*in.SystolicMMHG, *in.DiastolicMMHG, out.BloodPressureStatus)
	}
	if in.BloodSugarMGDL != nil {
		fmt.Fprintf(&b, " Blood sugar is %.1f mg/dL (%s).", *in.BloodSugarMGDL, out.BloodSugarStatus)
	}
	if in.HeartRateBPM != nil {
		fmt.Fprintf(&b, " Heart rate is %d bpm (%s).", *in.HeartRateBPM, out.HeartRateStatus)
	}
	if len(factors) > 0 {
		fmt.Fprintf(&b, " Identified risk factors: %s.", strings.Join(factors, ", "))
	}
	return b.String()
}

func buildRecommendations(in ClinicalInput, out ClinicalAssessment, symptoms []string) []string {
	var recs []string

	if out.BMICategory == "overweight" || out.BMICategory == "obese" {
		recs = append(recs, "Adopt a calorie-controlled diet and increase daily physical activity to reach a healthy weight.")
	}

	bp := out.BloodPressureStatus
	if bp == "borderline high" || bp == "high" || in.HasHypertension {
		recs = append(recs, "Monitor your blood pressure regularly and follow a low-sodium diet.")
	}
	if bp == "high" && !in.OnMedication {
		recs = append(recs, "Consult a healthcare provider about blood pressure medication.")
	}

	sugar := out.BloodSugarStatus
	if sugar == "borderline high" || sugar == "high" || in.HasDiabetes {
		recs = append(recs, "Monitor your blood sugar levels and limit sugar intake.")
	}
	if sugar == "high" && !in.OnMedication {
		recs = append(recs, "Consult a healthcare provider about diabetes management.")
	}

	if in.Smokes {
		recs = append(recs, "Consider enrolling in a smoking cessation program.")
	}
	if in.ConsumesAlcohol {
		recs = append(recs, "Limit alcohol consumption.")
	}
	if in.EatsUnhealthy {
		recs = append(recs, "Adopt a balanced diet rich in fruits and vegetables.")
	}
	if in.SkipsMedication && in.OnMedication {
		recs = append(recs, "Take prescribed medication consistently; set daily reminders if needed.")
	}
	if in.ExerciseMinutesPerDay == nil || *in.ExerciseMinutesPerDay < 30 {
		recs = append(recs, "Aim for at least 30 minutes of physical activity every day.")
	}
	if in.SleepHours == nil || *in.SleepHours < 7 || *in.SleepHours > 9 {
		recs = append(recs, "Aim for 7 to 9 hours of sleep per night.")
	}

	// Urgent notices go ahead of the body list. Chest pain outranks the
	// general high-risk notice.
	var prefix []string
	if containsString(symptoms, "chest pain") {
		prefix = append(prefix, recChestPain)
	}
	if out.RiskLevel == RiskHigh {
		prefix = append(prefix, recHighRisk)
	}
	recs = append(prefix, recs...)

	if len(recs) == 0 {
		recs = []string{recHealthyHabits}
	}
	return recs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
