package models

// MatrixInputs is the flat record of scalar user inputs submitted alongside a
// test-matrix workbook. Values are decimal strings when present, empty when
// the user left the field blank. They seed the placeholder-replacement table
// and the generated parameters.inc.
type MatrixInputs struct {
	Pressure         string `json:"pressure1" form:"pressure1"`
	Load1            string `json:"load1_kg" form:"load1_kg"`
	Load2            string `json:"load2_kg" form:"load2_kg"`
	Load3            string `json:"load3_kg" form:"load3_kg"`
	Load4            string `json:"load4_kg" form:"load4_kg"`
	Load5            string `json:"load5_kg" form:"load5_kg"`
	Velocity         string `json:"velocity_kmph" form:"velocity_kmph"`
	InclinationAngle string `json:"inclination_angle" form:"inclination_angle"`
	SlipRatio        string `json:"slip_ratio" form:"slip_ratio"`
	RimDiameter      string `json:"rim_diameter_inch" form:"rim_diameter_inch"`
	RimWidth         string `json:"rim_width_inch" form:"rim_width_inch"`
	OverallDiameter  string `json:"overall_diameter_mm" form:"overall_diameter_mm"`
	SectionWidth     string `json:"section_width_mm" form:"section_width_mm"`
}

// Loads returns the five load inputs in order.
func (m MatrixInputs) Loads() [5]string {
	return [5]string{m.Load1, m.Load2, m.Load3, m.Load4, m.Load5}
}
