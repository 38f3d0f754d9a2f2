package equivalency

// EPA formula constants (2024 edition).
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e per unit of the activity, so the equivalency
// is the carbon value divided by the factor.
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeYearFactor is kg CO2e absorbed per tree per year of growth.
	EPATreeYearFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Unit conversion constants for normalizing carbon values to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonsToKg converts metric tons to kilograms.
	TonsToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592
)

// Display threshold constants.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing
	// equivalencies. Below it the comparisons become meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is the value at which display switches to the
	// abbreviated "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the value at which display switches to the
	// "~X.X billion" format.
	BillionThreshold = 1_000_000_000
)
