package tree

import (
	"fmt"

	"github.com/stegmannb/usbtree/internal/colour"
	"github.com/stegmannb/usbtree/internal/models"
)

type EndpointBlock int

const (
	EndpointNumber EndpointBlock = iota
	EndpointDirection
	EndpointTransferType
	EndpointSyncType
	EndpointUsageType
	EndpointMaxPacketSize
	EndpointInterval
)

var endpointBlockNames = []string{
	"number", "direction", "transfer-type", "sync-type", "usage-type",
	"max-packet-size", "interval",
}

func (b EndpointBlock) String() string { return enumName(endpointBlockNames, int(b)) }

func AllEndpointBlocks() []EndpointBlock {
	out := make([]EndpointBlock, len(endpointBlockNames))
	for i := range out {
		out[i] = EndpointBlock(i)
	}
	return out
}

func ParseEndpointBlocks(names []string) ([]EndpointBlock, error) {
	return parseBlocks(AllEndpointBlocks(), names)
}

func DefaultEndpointBlocks(verbose bool) []EndpointBlock {
	if verbose {
		return []EndpointBlock{
			EndpointNumber, EndpointDirection, EndpointTransferType, EndpointSyncType,
			EndpointUsageType, EndpointInterval, EndpointMaxPacketSize,
		}
	}
	return []EndpointBlock{
		EndpointNumber, EndpointDirection, EndpointTransferType, EndpointSyncType,
		EndpointUsageType, EndpointMaxPacketSize,
	}
}

func (b EndpointBlock) isIcon() bool { return false }

func (b EndpointBlock) ValueIsString() bool {
	switch b {
	case EndpointDirection, EndpointTransferType, EndpointSyncType, EndpointUsageType, EndpointMaxPacketSize:
		return true
	default:
		return false
	}
}

func (b EndpointBlock) Heading(pad map[EndpointBlock]int) string {
	switch b {
	case EndpointNumber:
		return " #"
	case EndpointInterval:
		return "Iv"
	case EndpointMaxPacketSize:
		return centre("MaxPkB", pad[b])
	case EndpointDirection:
		return centre("Dir", pad[b])
	case EndpointTransferType:
		return centre("TransferT", pad[b])
	case EndpointSyncType:
		return centre("SyncT", pad[b])
	case EndpointUsageType:
		return centre("UsageT", pad[b])
	default:
		return ""
	}
}

func (b EndpointBlock) text(e *models.Endpoint) string {
	switch b {
	case EndpointDirection:
		return e.Address.Direction.String()
	case EndpointTransferType:
		return e.TransferType.String()
	case EndpointSyncType:
		return e.SyncType.String()
	case EndpointUsageType:
		return e.UsageType.String()
	case EndpointMaxPacketSize:
		return e.MaxPacketString()
	default:
		return ""
	}
}

func (b EndpointBlock) FormatValue(e *models.Endpoint, pad map[EndpointBlock]int, _ *PrintSettings) (string, bool) {
	switch b {
	case EndpointNumber:
		return fmt.Sprintf("%2d", e.Address.Number), true
	case EndpointInterval:
		return fmt.Sprintf("%2d", e.Interval), true
	case EndpointDirection, EndpointTransferType, EndpointSyncType, EndpointUsageType, EndpointMaxPacketSize:
		return padRight(b.text(e), pad[b]), true
	default:
		return "", false
	}
}

func (b EndpointBlock) Colour(v string, ct *colour.Theme) string {
	switch b {
	case EndpointNumber, EndpointInterval, EndpointMaxPacketSize:
		return colour.Apply(ct.Number, v)
	case EndpointDirection, EndpointUsageType, EndpointTransferType, EndpointSyncType:
		return colour.Apply(ct.Attributes, v)
	default:
		return v
	}
}
