package units

import "fmt"

// Display wrappers for the fixed unit set of the calculator (kg, kgf, N,
// Wh, W, minutes). Each String method renders with the precision the
// report surfaces use, so formatting stays consistent across table, HTML
// and JSON-adjacent text output.

// Kilograms is a mass in kg, shown with 2 decimals.
type Kilograms float64

func (k Kilograms) String() string { return fmt.Sprintf("%.2f kg", float64(k)) }

// KilogramsForce is a thrust in kgf, shown with 2 decimals.
type KilogramsForce float64

func (k KilogramsForce) String() string { return fmt.Sprintf("%.2f kgf", float64(k)) }

// Newtons is a force in N, shown with no decimals.
type Newtons float64

func (n Newtons) String() string { return fmt.Sprintf("%.0f N", float64(n)) }

// WattHours is a battery energy in Wh, shown with no decimals.
type WattHours float64

func (w WattHours) String() string { return fmt.Sprintf("%.0f Wh", float64(w)) }

// Watts is a power in W, shown with no decimals.
type Watts float64

func (w Watts) String() string { return fmt.Sprintf("%.0f W", float64(w)) }

// Minutes is a duration in minutes, shown with 1 decimal.
type Minutes float64

func (m Minutes) String() string { return fmt.Sprintf("%.1f min", float64(m)) }

// Ratio is a thrust-to-weight ratio, shown as "X.XX:1".
type Ratio float64

func (r Ratio) String() string { return fmt.Sprintf("%.2f:1", float64(r)) }
