package transport

import "fmt"

// ValidateAddress rejects the degenerate all-zero and all-identical-byte MAC
// addresses that a misconfigured adapter might otherwise hand back as a
// connectable device.
func ValidateAddress(mac MAC) error {
	if mac == (MAC{}) {
		return fmt.Errorf("transport: address %s: cannot be the zero address", mac)
	}
	allSame := true
	for i := 1; i < len(mac); i++ {
		if mac[i] != mac[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return fmt.Errorf("transport: address %s: cannot have all identical bytes", mac)
	}
	return nil
}

// ValidateUUID rejects the nil UUID, which can never name a real GATT
// service.
func ValidateUUID(u UUID) error {
	if u.UUID.String() == "00000000-0000-0000-0000-000000000000" {
		return fmt.Errorf("transport: uuid: cannot be the nil UUID")
	}
	return nil
}
