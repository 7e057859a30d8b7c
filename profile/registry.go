package profile

import "github.com/soundcore-oss/soundcore-go/transport"

// Registry is the static, compile-time-populated table of supported device
// profiles, keyed by their advertised GATT service UUID (spec §4.4:
// "Selection is by service_uuid returned by the transport").
var Registry = map[transport.UUID]DeviceProfile{
	a3930ServiceUUID: a3930Profile,
	a3933ServiceUUID: a3933Profile,
	a3939ServiceUUID: a3939Profile,
	a3945ServiceUUID: a3945Profile,
	a3951ServiceUUID: a3951Profile,
}

// Lookup returns the profile registered for serviceUUID, if any.
func Lookup(serviceUUID transport.UUID) (DeviceProfile, bool) {
	p, ok := Registry[serviceUUID]
	return p, ok
}
