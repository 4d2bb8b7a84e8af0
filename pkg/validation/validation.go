package validation

import (
	"net/url"
	"strings"
)

// Named validators for request bodies. Each returns a field→message map;
// an empty map means the input passed. Messages are part of the API
// contract and are matched by the frontend.

type SpotInput struct {
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
}

func ValidateSpot(in SpotInput) map[string]string {
	errors := map[string]string{}
	if strings.TrimSpace(in.Address) == "" {
		errors["address"] = "Street address is required"
	}
	if strings.TrimSpace(in.City) == "" {
		errors["city"] = "City is required"
	}
	if strings.TrimSpace(in.State) == "" {
		errors["state"] = "State is required"
	}
	if strings.TrimSpace(in.Country) == "" {
		errors["country"] = "Country is required"
	}
	if in.Lat < -90 || in.Lat > 90 {
		errors["lat"] = "Latitude must be within -90 and 90"
	}
	if in.Lng < -180 || in.Lng > 180 {
		errors["lng"] = "Longitude must be within -180 and 180"
	}
	if in.Name == "" || len(in.Name) > 50 {
		errors["name"] = "Name must be between 1 and 50 characters"
	}
	if strings.TrimSpace(in.Description) == "" {
		errors["description"] = "Description is required"
	}
	if in.Price < 1 {
		errors["price"] = "Price per day must be a positive number"
	}
	return errors
}

// ValidateImageURL accepts only absolute http(s) URLs. The preview flag is
// type-checked at bind time; a non-boolean never reaches this far.
func ValidateImageURL(raw string) map[string]string {
	errors := map[string]string{}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors["url"] = "URL does not exist or is invalid"
	}
	return errors
}

func ValidateReview(text string, stars int) map[string]string {
	errors := map[string]string{}
	if strings.TrimSpace(text) == "" {
		errors["review"] = "Review text is required"
	} else if len(text) > 512 {
		errors["review"] = "Review text must be less than 512 characters"
	}
	if stars < 1 || stars > 5 {
		errors["stars"] = "Stars must be an integer from 1 to 5"
	}
	return errors
}

type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func ValidateSignup(in SignupInput) map[string]string {
	errors := map[string]string{}
	if !looksLikeEmail(in.Email) {
		errors["email"] = "Invalid email"
	}
	if len(in.Username) < 4 || len(in.Username) > 30 {
		errors["username"] = "Username must be between 4 and 30 characters"
	} else if looksLikeEmail(in.Username) {
		errors["username"] = "Username cannot be an email"
	}
	if len(in.Password) < 6 {
		errors["password"] = "Password must be 6 characters or more"
	}
	if strings.TrimSpace(in.FirstName) == "" {
		errors["firstName"] = "First Name is required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		errors["lastName"] = "Last Name is required"
	}
	return errors
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}

type SpotQuery struct {
	Page     int
	Size     int
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *int
	MaxPrice *int
}

// ValidateSpotQuery checks the already-parsed listing filters. Parsing
// failures are reported by the handler with the same messages.
func ValidateSpotQuery(q SpotQuery) map[string]string {
	errors := map[string]string{}
	if q.Page < 1 {
		errors["page"] = "Page must be greater than or equal to 1"
	}
	if q.Size < 1 || q.Size > 20 {
		errors["size"] = "Size must be between 1 and 20"
	}
	if q.MinLat != nil && (*q.MinLat < -90 || *q.MinLat > 90) {
		errors["minLat"] = "Minimum latitude is invalid"
	}
	if q.MaxLat != nil && (*q.MaxLat < -90 || *q.MaxLat > 90) {
		errors["maxLat"] = "Maximum latitude is invalid"
	}
	if q.MinLng != nil && (*q.MinLng < -180 || *q.MinLng > 180) {
		errors["minLng"] = "Minimum longitude is invalid"
	}
	if q.MaxLng != nil && (*q.MaxLng < -180 || *q.MaxLng > 180) {
		errors["maxLng"] = "Maximum longitude is invalid"
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		errors["minPrice"] = "Minimum price must be greater than or equal to 0"
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		errors["maxPrice"] = "Maximum price must be greater than or equal to 0"
	}
	return errors
}
