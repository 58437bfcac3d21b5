package model

// 検査予約の時間枠（1時間区切りの24枠、固定）
var TimeSlots = []string{
	"00:00 AM - 01:00 AM",
	"01:00 AM - 02:00 AM",
	"02:00 AM - 03:00 AM",
	"03:00 AM - 04:00 AM",
	"04:00 AM - 05:00 AM",
	"05:00 AM - 06:00 AM",
	"06:00 AM - 07:00 AM",
	"07:00 AM - 08:00 AM",
	"08:00 AM - 09:00 AM",
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 01:00 PM",
	"01:00 PM - 02:00 PM",
	"02:00 PM - 03:00 PM",
	"03:00 PM - 04:00 PM",
	"04:00 PM - 05:00 PM",
	"05:00 PM - 06:00 PM",
	"06:00 PM - 07:00 PM",
	"07:00 PM - 08:00 PM",
	"08:00 PM - 09:00 PM",
	"09:00 PM - 10:00 PM",
	"10:00 PM - 11:00 PM",
	"11:00 PM - 12:00 AM",
}

func IsValidTimeSlot(s string) bool {
	for _, slot := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
