package invoice

import "strings"

// Client is the billed party. Every field is optional.
type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// BusinessInfo is the issuing business profile. Every field is optional.
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// AddressLines returns the non-blank client lines in print order:
// name, street, "city, state zip", country, email, phone.
func (c Client) AddressLines() []string {
	return compact(c.Name, c.Address, cityLine(c.City, c.State, c.ZipCode), c.Country, c.Email, c.Phone)
}

// AddressLines returns the non-blank business lines in print order. The
// website is printed in the footer, not here.
func (b BusinessInfo) AddressLines() []string {
	return compact(b.Name, b.Address, cityLine(b.City, b.State, b.ZipCode), b.Country, b.Email, b.Phone)
}

func cityLine(city, state, zip string) string {
	city = strings.TrimSpace(city)
	region := strings.TrimSpace(strings.TrimSpace(state) + " " + strings.TrimSpace(zip))
	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	default:
		return region
	}
}

func compact(fields ...string) []string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			lines = append(lines, f)
		}
	}
	return lines
}
