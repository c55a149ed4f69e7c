//go:build linux

package transport

import (
	"fmt"
)

// String renders mac as six colon-separated hex octets.
func (mac MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// ParseMAC parses a colon- or hyphen-separated hex MAC address, as
// accepted by the CLI's device-address argument.
func ParseMAC(s string) (MAC, error) {
	var mac MAC
	n, err := fmt.Sscanf(s, "%02X:%02X:%02X:%02X:%02X:%02X", &mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err == nil && n == 6 {
		return mac, nil
	}
	n, err = fmt.Sscanf(s, "%02X-%02X-%02X-%02X-%02X-%02X", &mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err == nil && n == 6 {
		return mac, nil
	}
	return MAC{}, fmt.Errorf("transport: invalid MAC address %q", s)
}
