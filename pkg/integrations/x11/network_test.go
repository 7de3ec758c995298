package x11

import (
	"reflect"
	"testing"
)

func TestParseIPLink(t *testing.T) {
	out := `lo               UNKNOWN        00:00:00:00:00:00 <LOOPBACK,UP,LOWER_UP>
eth0             UP             52:54:00:12:34:56 <BROADCAST,MULTICAST,UP,LOWER_UP>
wlan0            DOWN           aa:bb:cc:dd:ee:ff <BROADCAST,MULTICAST>
`
	got := parseIPLink(out)
	want := []string{
		"Interfaces:",
		"  lo: UNKNOWN",
		"  eth0: UP",
		"  wlan0: DOWN",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseIPLink() = %v, want %v", got, want)
	}
}

func TestParseActiveWifi(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantState string
		wantSSID  string
	}{
		{
			name:      "Connected",
			out:       "no:OtherNet\nyes:HomeNet\nno:CoffeeShop\n",
			wantState: "connected",
			wantSSID:  "HomeNet",
		},
		{
			name:      "Connected with hidden SSID",
			out:       "yes:\n",
			wantState: "connected",
			wantSSID:  "Unknown",
		},
		{
			name:      "Disconnected",
			out:       "no:OtherNet\nno:CoffeeShop\n",
			wantState: "disconnected",
			wantSSID:  "None",
		},
		{
			name:      "Empty output",
			out:       "",
			wantState: "disconnected",
			wantSSID:  "None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, ssid := parseActiveWifi(tt.out)
			if state != tt.wantState || ssid != tt.wantSSID {
				t.Errorf("parseActiveWifi() = (%q, %q), want (%q, %q)",
					state, ssid, tt.wantState, tt.wantSSID)
			}
		})
	}
}

func TestParseNearbySSIDs(t *testing.T) {
	out := "HomeNet\nCoffeeShop\n\nHomeNet\nGuest\n"
	got := parseNearbySSIDs(out)
	want := []string{"HomeNet", "CoffeeShop", "Guest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseNearbySSIDs() = %v, want %v", got, want)
	}
}

func TestParseNeighbors(t *testing.T) {
	out := `192.168.1.1 dev eth0 lladdr aa:bb:cc:dd:ee:01 REACHABLE
192.168.1.50 dev eth0 FAILED
192.168.1.7 dev eth0 lladdr aa:bb:cc:dd:ee:07 STALE
192.168.1.99 dev eth0 INCOMPLETE
`
	got := parseNeighbors(out)
	want := []string{
		"192.168.1.1 dev eth0 lladdr aa:bb:cc:dd:ee:01 REACHABLE",
		"192.168.1.7 dev eth0 lladdr aa:bb:cc:dd:ee:07 STALE",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseNeighbors() = %v, want %v", got, want)
	}
}
