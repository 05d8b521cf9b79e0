package constant

// Services offered by the studio. An appointment selects one or more.
const (
	ServiceBasicCare   = "基礎保養"
	ServiceSingleColor = "單色凝膠"
	ServiceDesignGel   = "造型凝膠"
	ServiceRemoval     = "卸甲重作"
)

// Nail styles. An appointment selects exactly one.
const (
	StyleSolid  = "純色簡約"
	StyleMarble = "暈染氛圍"
	StyleFrench = "法式優雅"
	StyleLuxury = "華麗精緻"
)

// Services returns the service catalog in display order.
func Services() []string {
	return []string{ServiceBasicCare, ServiceSingleColor, ServiceDesignGel, ServiceRemoval}
}

// Styles returns the style catalog in display order.
func Styles() []string {
	return []string{StyleSolid, StyleMarble, StyleFrench, StyleLuxury}
}

// TimeSlots returns the bookable start times.
func TimeSlots() []string {
	return []string{"10:00", "13:00", "16:00", "19:00"}
}

// DateLayout is the format of Appointment.Date.
const DateLayout = "2006-01-02"
