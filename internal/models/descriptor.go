package models

import (
	"fmt"
	"strings"
)

type ClassCode uint8

const (
	ClassUseInterface        ClassCode = 0x00
	ClassAudio               ClassCode = 0x01
	ClassCDCCommunications   ClassCode = 0x02
	ClassHID                 ClassCode = 0x03
	ClassPhysical            ClassCode = 0x05
	ClassImage               ClassCode = 0x06
	ClassPrinter             ClassCode = 0x07
	ClassMassStorage         ClassCode = 0x08
	ClassHub                 ClassCode = 0x09
	ClassCDCData             ClassCode = 0x0a
	ClassSmartCard           ClassCode = 0x0b
	ClassContentSecurity     ClassCode = 0x0d
	ClassVideo               ClassCode = 0x0e
	ClassPersonalHealthcare  ClassCode = 0x0f
	ClassAudioVideo          ClassCode = 0x10
	ClassBillboard           ClassCode = 0x11
	ClassDiagnostic          ClassCode = 0xdc
	ClassWireless            ClassCode = 0xe0
	ClassMiscellaneous       ClassCode = 0xef
	ClassApplicationSpecific ClassCode = 0xfe
	ClassVendorSpecific      ClassCode = 0xff
)

var classNames = map[ClassCode]string{
	ClassUseInterface:        "Device",
	ClassAudio:               "Audio",
	ClassCDCCommunications:   "Communications",
	ClassHID:                 "HID",
	ClassPhysical:            "Physical",
	ClassImage:               "Image",
	ClassPrinter:             "Printer",
	ClassMassStorage:         "Mass Storage",
	ClassHub:                 "Hub",
	ClassCDCData:             "CDC Data",
	ClassSmartCard:           "Smart Card",
	ClassContentSecurity:     "Content Security",
	ClassVideo:               "Video",
	ClassPersonalHealthcare:  "Personal Healthcare",
	ClassAudioVideo:          "Audio/Video",
	ClassBillboard:           "Billboard",
	ClassDiagnostic:          "Diagnostic",
	ClassWireless:            "Wireless",
	ClassMiscellaneous:       "Miscellaneous",
	ClassApplicationSpecific: "Application Specific",
	ClassVendorSpecific:      "Vendor Specific",
}

func (c ClassCode) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class %02x", uint8(c))
}

// ParseClassCode accepts a class name, case insensitive, or a hex code.
func ParseClassCode(s string) (ClassCode, error) {
	for code, name := range classNames {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}
	var v uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(strings.ToLower(s), "0x"), "%x", &v); err != nil {
		return 0, fmt.Errorf("unknown class %q", s)
	}
	return ClassCode(v), nil
}

type ConfigAttribute uint8

const (
	SelfPowered ConfigAttribute = iota
	RemoteWakeup
)

func (a ConfigAttribute) String() string {
	switch a {
	case SelfPowered:
		return "SelfPowered"
	case RemoteWakeup:
		return "RemoteWakeup"
	default:
		return "Unknown"
	}
}

type Configuration struct {
	Name       string            `json:"name"`
	Number     uint8             `json:"number"`
	Attributes []ConfigAttribute `json:"attributes"`
	MaxPower   uint16            `json:"max_power"`
	Interfaces []Interface       `json:"interfaces"`
}

func (c *Configuration) AttributesString() string {
	names := make([]string, len(c.Attributes))
	for i, a := range c.Attributes {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

type Interface struct {
	Name       string     `json:"name"`
	Number     uint8      `json:"number"`
	Path       string     `json:"path"`
	Class      ClassCode  `json:"class"`
	SubClass   uint8      `json:"sub_class"`
	Protocol   uint8      `json:"protocol"`
	AltSetting uint8      `json:"alt_setting"`
	Driver     string     `json:"driver,omitempty"`
	SysPath    string     `json:"syspath,omitempty"`
	Endpoints  []Endpoint `json:"endpoints"`
}

type Direction uint8

const (
	DirectionOut Direction = iota
	DirectionIn
)

func (d Direction) String() string {
	if d == DirectionIn {
		return "IN"
	}
	return "OUT"
}

type TransferType uint8

const (
	TransferControl TransferType = iota
	TransferIsochronous
	TransferBulk
	TransferInterrupt
)

func (t TransferType) String() string {
	switch t {
	case TransferControl:
		return "Control"
	case TransferIsochronous:
		return "Isochronous"
	case TransferBulk:
		return "Bulk"
	case TransferInterrupt:
		return "Interrupt"
	default:
		return "Unknown"
	}
}

type SyncType uint8

const (
	SyncNone SyncType = iota
	SyncAsynchronous
	SyncAdaptive
	SyncSynchronous
)

func (s SyncType) String() string {
	switch s {
	case SyncNone:
		return "None"
	case SyncAsynchronous:
		return "Asynchronous"
	case SyncAdaptive:
		return "Adaptive"
	case SyncSynchronous:
		return "Synchronous"
	default:
		return "Unknown"
	}
}

type UsageType uint8

const (
	UsageData UsageType = iota
	UsageFeedback
	UsageFeedbackData
	UsageReserved
)

func (u UsageType) String() string {
	switch u {
	case UsageData:
		return "Data"
	case UsageFeedback:
		return "Feedback"
	case UsageFeedbackData:
		return "FeedbackData"
	default:
		return "Reserved"
	}
}

type EndpointAddress struct {
	Address   uint8     `json:"address"`
	Number    uint8     `json:"number"`
	Direction Direction `json:"direction"`
}

// NewEndpointAddress splits bEndpointAddress into number and direction.
func NewEndpointAddress(address uint8) EndpointAddress {
	dir := DirectionOut
	if address&0x80 != 0 {
		dir = DirectionIn
	}
	return EndpointAddress{Address: address, Number: address & 0x0f, Direction: dir}
}

type Endpoint struct {
	Address       EndpointAddress `json:"address"`
	TransferType  TransferType    `json:"transfer_type"`
	SyncType      SyncType        `json:"sync_type"`
	UsageType     UsageType       `json:"usage_type"`
	MaxPacketSize uint16          `json:"max_packet_size"`
	Interval      uint8           `json:"interval"`
}

// MaxPacketString renders wMaxPacketSize as transactions per microframe
// times bytes, bits 11-12 holding the additional transactions.
func (e *Endpoint) MaxPacketString() string {
	size := e.MaxPacketSize & 0x07ff
	transactions := (e.MaxPacketSize>>11)&0x03 + 1
	return fmt.Sprintf("%dx %d", transactions, size)
}
