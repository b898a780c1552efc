package catalog

import (
	"testing"

	"github.com/revivatech/diagnose/engine/domain"
)

func TestExtractBest(t *testing.T) {
	tests := []struct {
		input        string
		wantBrand    string
		wantModel    string
		wantYear     int
		wantCategory domain.DeviceCategory
	}{
		{"My 2019 MacBook Pro keeps shutting down", "Apple", "MacBook Pro", 2019, domain.DeviceLaptop},
		{"Dell XPS 15 battery issue", "Dell", "XPS", 0, domain.DeviceLaptop},
		{"my iphone screen cracked yesterday", "Apple", "iPhone", 0, domain.DevicePhone},
		{"nintendo switch won't charge", "Nintendo", "Switch", 0, domain.DeviceConsole},
		{"PS5 overheating after an hour of play", "Sony", "PS5", 0, domain.DeviceConsole},
		{"surface pro from 2022 not charging", "Microsoft", "Surface Pro", 2022, domain.DeviceTablet},
		{"Lenovo ThinkPad fan noise", "Lenovo", "ThinkPad", 0, domain.DeviceLaptop},
		{"samsung galaxy tab stuck on logo", "Samsung", "Galaxy Tab", 0, domain.DeviceTablet},
		{"2021 HP Pavilion no display", "HP", "Pavilion", 2021, domain.DeviceLaptop},
		{"ipad won't hold a charge", "Apple", "iPad", 0, domain.DeviceTablet},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := ExtractBest(tt.input)
			if m == nil {
				t.Fatalf("ExtractBest(%q) = nil, want match", tt.input)
			}
			if m.Brand != tt.wantBrand {
				t.Errorf("Brand = %q, want %q", m.Brand, tt.wantBrand)
			}
			if m.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", m.Model, tt.wantModel)
			}
			if m.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", m.Year, tt.wantYear)
			}
			if m.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", m.Category, tt.wantCategory)
			}
		})
	}
}

func TestExtractNoDevice(t *testing.T) {
	if m := ExtractBest(""); m != nil {
		t.Error("expected nil for empty string")
	}
	if m := ExtractBest("the fan is loud and it keeps freezing"); m != nil {
		t.Errorf("expected nil, got %+v", m)
	}
}

func TestExtractMultipleDevices(t *testing.T) {
	matches := Extract("backed up my MacBook Air before sending the Dell XPS in")
	if len(matches) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(matches))
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	m := ExtractBest("my LENOVO thinkpad is dead")
	if m == nil || m.Brand != "Lenovo" || m.Model != "ThinkPad" {
		t.Errorf("case insensitive extraction failed: %+v", m)
	}
}

func TestExtractDeduplicates(t *testing.T) {
	matches := Extract("lenovo thinkpad, the thinkpad again")
	count := 0
	for _, m := range matches {
		if m.Brand == "Lenovo" && m.Model == "ThinkPad" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d Lenovo ThinkPad matches, want 1", count)
	}
}

func TestMatchDeviceInfo(t *testing.T) {
	m := ExtractBest("2020 MacBook Air battery swollen")
	if m == nil {
		t.Fatal("expected a match")
	}
	info := m.DeviceInfo()
	if info.Brand != "Apple" || info.Model != "MacBook Air" || info.Year != 2020 {
		t.Errorf("DeviceInfo = %+v", info)
	}
	if info.Category != domain.DeviceLaptop {
		t.Errorf("Category = %q, want laptop", info.Category)
	}
}

func TestDeviceID(t *testing.T) {
	if got := DeviceID(" Apple ", "MacBook Pro"); got != "apple|macbook pro" {
		t.Errorf("DeviceID = %q", got)
	}
}
