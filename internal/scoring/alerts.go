// ABOUTME: Health alert derivation from water, fish and equipment snapshots.
// ABOUTME: Each metric yields at most one alert; the critical check runs first.
package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/betta/internal/models"
)

// AlertType is the severity of an alert.
type AlertType string

const (
	AlertCritical AlertType = "critical"
	AlertWarning  AlertType = "warning"
	AlertInfo     AlertType = "info"
)

// Category groups alerts by what they are about.
type Category string

const (
	CategoryWater     Category = "water"
	CategoryFish      Category = "fish"
	CategoryEquipment Category = "equipment"
)

// HealthAlert is a derived finding. It is never persisted.
type HealthAlert struct {
	Type           AlertType `json:"type"`
	Category       Category  `json:"category"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

func newAlert(t AlertType, c Category, title, message, recommendation string) HealthAlert {
	return HealthAlert{
		Type:           t,
		Category:       c,
		Title:          title,
		Message:        message,
		Recommendation: recommendation,
		Timestamp:      time.Now(),
	}
}

// DeriveWaterAlerts evaluates temperature, ammonia, nitrite, nitrate and pH in that order.
func DeriveWaterAlerts(water models.WaterReading) []HealthAlert {
	var alerts []HealthAlert

	temp := num(water.Temperature)
	switch {
	case water.Temperature < SafeTempMin || water.Temperature > SafeTempMax:
		alerts = append(alerts, newAlert(AlertCritical, CategoryWater,
			"Temperature Emergency",
			fmt.Sprintf("Water temperature is %s°F, which is dangerous for bettas.", temp),
			"Adjust the heater gradually (no more than 2°F per hour) toward 78°F and check the thermometer."))
	case outside(water.Temperature, IdealTempMin, IdealTempMax):
		alerts = append(alerts, newAlert(AlertWarning, CategoryWater,
			"Temperature Out of Range",
			fmt.Sprintf("Water temperature is %s°F. Bettas do best between 75-82°F.", temp),
			"Check the heater setting and keep the tank away from windows and vents."))
	}

	if water.Ammonia > 0 {
		alerts = append(alerts, newAlert(AlertCritical, CategoryWater,
			"Ammonia Detected",
			fmt.Sprintf("Ammonia is %s ppm. Any ammonia is toxic to bettas.", num(water.Ammonia)),
			"Do a 25-50% water change now with conditioned water and test again in 24 hours."))
	}

	if water.Nitrite > 0 {
		alerts = append(alerts, newAlert(AlertCritical, CategoryWater,
			"Nitrite Detected",
			fmt.Sprintf("Nitrite is %s ppm. The tank cycle may be disrupted.", num(water.Nitrite)),
			"Do a 25-50% water change, avoid overfeeding, and check that the filter is running."))
	}

	switch {
	case water.Nitrate > NitrateCritical:
		alerts = append(alerts, newAlert(AlertCritical, CategoryWater,
			"Very High Nitrate",
			fmt.Sprintf("Nitrate is %s ppm, well above the 20 ppm target.", num(water.Nitrate)),
			"Do a 50% water change and increase the frequency of routine changes."))
	case water.Nitrate > NitrateWarn:
		alerts = append(alerts, newAlert(AlertWarning, CategoryWater,
			"Elevated Nitrate",
			fmt.Sprintf("Nitrate is %s ppm. Keep it under 20 ppm.", num(water.Nitrate)),
			"Schedule a 25% water change and vacuum the substrate."))
	}

	switch {
	case water.PH < SafePHMin || water.PH > SafePHMax:
		alerts = append(alerts, newAlert(AlertCritical, CategoryWater,
			"Dangerous pH Level",
			fmt.Sprintf("pH is %s, outside the safe 6.0-8.0 range.", num(water.PH)),
			"Correct pH slowly with water changes. Avoid chemical pH swings."))
	case outside(water.PH, IdealPHMin, IdealPHMax):
		alerts = append(alerts, newAlert(AlertWarning, CategoryWater,
			"pH Out of Range",
			fmt.Sprintf("pH is %s. Bettas prefer 6.5-7.5.", num(water.PH)),
			"Monitor pH daily and use botanicals or driftwood to stabilize it."))
	}

	return alerts
}

// DeriveFishAlerts evaluates appetite, activity, fins, gills and color.
func DeriveFishAlerts(fish models.Fish) []HealthAlert {
	var alerts []HealthAlert

	switch fish.Appetite {
	case models.AppetiteNotEating:
		alerts = append(alerts, newAlert(AlertCritical, CategoryFish,
			"Fish Not Eating",
			"Your betta is refusing food.",
			"Test the water, check the temperature, and offer a small portion of live or frozen food."))
	case models.AppetiteEatingLess:
		alerts = append(alerts, newAlert(AlertWarning, CategoryFish,
			"Reduced Appetite",
			"Your betta is eating less than usual.",
			"Feed smaller portions and watch for other symptoms over the next few days."))
	}

	if fish.Activity == models.ActivityLethargic || fish.Activity == models.ActivityLyingAtBottom {
		alerts = append(alerts, newAlert(AlertCritical, CategoryFish,
			"Lethargic Behavior",
			fmt.Sprintf("Your betta is %s.", strings.ToLower(fish.Activity)),
			"Check temperature and water quality immediately. Lethargy is often the first sign of stress."))
	}

	if fish.FinCondition == models.FinDamaged || fish.FinCondition == models.FinRotting {
		alerts = append(alerts, newAlert(AlertCritical, CategoryFish,
			"Fin Damage Detected",
			fmt.Sprintf("Fins are %s.", strings.ToLower(fish.FinCondition)),
			"Keep the water pristine with frequent changes and remove sharp decorations. Consider treatment if fins are rotting."))
	}

	if fish.GillCondition == models.GillGasping {
		alerts = append(alerts, newAlert(AlertCritical, CategoryFish,
			"Respiratory Distress",
			"Your betta is gasping for air.",
			"Test for ammonia and nitrite right away and make sure the surface is accessible."))
	}

	if fish.ColorCondition == models.ColorFading || fish.ColorCondition == models.ColorSpots {
		alerts = append(alerts, newAlert(AlertWarning, CategoryFish,
			"Color Changes",
			fmt.Sprintf("Color condition: %s.", strings.ToLower(fish.ColorCondition)),
			"Reduce stress, check water quality, and watch for spreading spots that may indicate parasites."))
	}

	return alerts
}

// DeriveEquipmentAlerts flags missing heater or filter and an undersized tank.
func DeriveEquipmentAlerts(tank models.Tank) []HealthAlert {
	var alerts []HealthAlert

	if !tank.Heater {
		alerts = append(alerts, newAlert(AlertWarning, CategoryEquipment,
			"No Heater",
			"The tank has no heater. Bettas are tropical fish.",
			"Install an adjustable heater sized for the tank and set it to 78°F."))
	}
	if !tank.Filter {
		alerts = append(alerts, newAlert(AlertWarning, CategoryEquipment,
			"No Filter",
			"The tank has no filter, so waste builds up quickly.",
			"Add a gentle sponge filter or increase water change frequency."))
	}
	if tank.SizeGallons < models.MinHealthyTankGallons {
		alerts = append(alerts, newAlert(AlertInfo, CategoryEquipment,
			"Small Tank",
			fmt.Sprintf("The tank holds %s gallons. At least 5 gallons is recommended.", num(tank.SizeGallons)),
			"Consider upgrading to a 5 gallon or larger tank for more stable water."))
	}

	return alerts
}

// DeriveAlerts returns water, fish and equipment alerts in that order.
func DeriveAlerts(tank models.Tank, fish models.Fish, water models.WaterReading) []HealthAlert {
	alerts := DeriveWaterAlerts(water)
	alerts = append(alerts, DeriveFishAlerts(fish)...)
	alerts = append(alerts, DeriveEquipmentAlerts(tank)...)
	return alerts
}

// CountByType tallies alerts per severity.
func CountByType(alerts []HealthAlert) map[AlertType]int {
	counts := make(map[AlertType]int)
	for _, a := range alerts {
		counts[a.Type]++
	}
	return counts
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
