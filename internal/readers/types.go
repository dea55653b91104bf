package readers

// View data is the fully-typed projection of an item's rich_content,
// ready for the public viewer. Derived, never persisted.

// --------------------------------------------------
// HOTEL
// --------------------------------------------------

type HotelViewData struct {
	HotelName          string               `json:"hotelName"`
	LocationCity       string               `json:"locationCity"`
	StarRating         float64              `json:"starRating"`
	RoomType           string               `json:"roomType"`
	BoardType          string               `json:"boardType"`
	CheckInDate        string               `json:"checkInDate"`
	CheckOutDate       string               `json:"checkOutDate"`
	CheckInTime        string               `json:"checkInTime"`
	CheckOutTime       string               `json:"checkOutTime"`
	Nights             int                  `json:"nights"`
	PricePerNight      float64              `json:"pricePerNight"`
	TotalPrice         float64              `json:"totalPrice"`
	Amenities          []string              `json:"amenities"`
	CancellationPolicy string                `json:"cancellationPolicy"`
	ImageURL           string                `json:"imageUrl,omitempty"`
	Images             []string              `json:"images"`
	Options            []HotelOptionViewData `json:"options"`
}

type HotelOptionViewData struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	PriceDelta    float64 `json:"priceDelta"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// FLIGHTS
// --------------------------------------------------

type FlightsViewData struct {
	Legs             []FlightLegViewData `json:"legs"`
	ShowPrices       bool                `json:"showPrices"`
	AllowMixAirlines bool                `json:"allowMixAirlines"`
	TotalPrice       float64             `json:"totalPrice"`
}

type FlightLegViewData struct {
	ID              string                 `json:"id"`
	Type            string                 `json:"type"` // outbound | return | connection
	Label           string                 `json:"label"`
	OriginCode      string                 `json:"originCode"`
	OriginCity      string                 `json:"originCity"`
	DestinationCode string                 `json:"destinationCode"`
	DestinationCity string                 `json:"destinationCity"`
	Date            string                 `json:"date"`
	SelectedOption  *FlightOptionViewData  `json:"selectedOption"`
	AllOptions      []FlightOptionViewData `json:"allOptions"`
}

type FlightOptionViewData struct {
	ID            string  `json:"id"`
	AirlineCode   string  `json:"airlineCode"`
	AirlineName   string  `json:"airlineName"`
	FlightNumber  string  `json:"flightNumber"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Duration      string  `json:"duration"`
	CabinClass    string  `json:"cabinClass"`
	Stops         int     `json:"stops"`
	Baggage       string  `json:"baggage"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// EXPERIENCE
// --------------------------------------------------

type ExperienceViewData struct {
	Name            string                     `json:"name"`
	Date            string                     `json:"date"`
	Time            string                     `json:"time"`
	Duration        string                     `json:"duration"`
	LocationCity    string                     `json:"locationCity"`
	MeetingPoint    string                     `json:"meetingPoint"`
	Participants    int                        `json:"participants"`
	PriceType       string                     `json:"priceType"` // per_person | total
	Price           float64                    `json:"price"`
	TotalPrice      float64                    `json:"totalPrice"`
	Currency        string                     `json:"currency"`
	Included        []string                   `json:"included"`
	DifficultyLevel string                     `json:"difficultyLevel,omitempty"` // easy | moderate | challenging
	ImageURL        string                     `json:"imageUrl,omitempty"`
	Options         []ExperienceOptionViewData `json:"options"`
}

type ExperienceOptionViewData struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// TRANSFER
// --------------------------------------------------

type TransferViewData struct {
	Origin          string                   `json:"origin"`
	OriginType      string                   `json:"originType"` // airport | hotel | port | address
	Destination     string                   `json:"destination"`
	DestinationType string                   `json:"destinationType"`
	RouteLabel      string                   `json:"routeLabel"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	VehicleType     string                   `json:"vehicleType"`
	Passengers      int                      `json:"passengers"`
	Price           float64                  `json:"price"`
	Currency        string                   `json:"currency"`
	ImageURL        string                   `json:"imageUrl,omitempty"`
	Options         []TransferOptionViewData `json:"options"`
}

type TransferOptionViewData struct {
	ID            string  `json:"id"`
	Vehicle       string  `json:"vehicle"`
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// INSURANCE
// --------------------------------------------------

type InsuranceViewData struct {
	Name                    string                    `json:"name"`
	Provider                string                    `json:"provider"`
	CoverageStart           string                    `json:"coverageStart"`
	CoverageEnd             string                    `json:"coverageEnd"`
	Travelers               int                       `json:"travelers"`
	MedicalCoverage         float64                   `json:"medicalCoverage"`
	MedicalCoverageCurrency string                    `json:"medicalCoverageCurrency"`
	Price                   float64                   `json:"price"`
	PriceType               string                    `json:"priceType"`
	TotalPrice              float64                   `json:"totalPrice"`
	Coverages               []string                  `json:"coverages"`
	ImageURL                string                    `json:"imageUrl,omitempty"`
	Options                 []InsuranceOptionViewData `json:"options"`
}

type InsuranceOptionViewData struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Tier          string  `json:"tier"` // basic | standard | premium | platinum
	Price         float64 `json:"price"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// CRUISE
// --------------------------------------------------

type CruiseViewData struct {
	CruiseName         string                 `json:"cruiseName"`
	CruiseLine         string                 `json:"cruiseLine"`
	ShipName           string                 `json:"shipName"`
	Ports              []CruisePortViewData   `json:"ports"`
	EmbarkationDate    string                 `json:"embarkationDate"`
	DisembarkationDate string                 `json:"disembarkationDate"`
	Nights             int                    `json:"nights"`
	CabinType          string                 `json:"cabinType"`
	BoardType          string                 `json:"boardType"`
	PriceType          string                 `json:"priceType"`
	Price              float64                `json:"price"`
	Passengers         int                    `json:"passengers"`
	TotalPrice         float64                `json:"totalPrice"`
	Included           []string               `json:"included"`
	ImageURL           string                 `json:"imageUrl,omitempty"`
	Options            []CruiseOptionViewData `json:"options"`
}

type CruisePortViewData struct {
	PortName         string `json:"portName"`
	Country          string `json:"country"`
	ArrivalDate      string `json:"arrivalDate,omitempty"`
	IsEmbarkation    bool   `json:"isEmbarkation"`
	IsDisembarkation bool   `json:"isDisembarkation"`
}

type CruiseOptionViewData struct {
	ID            string  `json:"id"`
	CabinType     string  `json:"cabinType"`
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	IsRecommended bool    `json:"isRecommended"`
	Enabled       bool    `json:"enabled"`
}

// --------------------------------------------------
// DISPLAY LABELS
// --------------------------------------------------

var boardTypeLabels = map[string]string{
	"room_only":     "Somente Quarto",
	"breakfast":     "Café da Manhã",
	"half_board":    "Meia Pensão",
	"full_board":    "Pensão Completa",
	"all_inclusive": "All Inclusive",
}

var cabinClassLabels = map[string]string{
	"economy":         "Econômica",
	"premium_economy": "Econômica Premium",
	"business":        "Executiva",
	"first":           "Primeira Classe",
}

var vehicleTypeLabels = map[string]string{
	"sedan":   "Sedan",
	"suv":     "SUV",
	"van":     "Van",
	"minibus": "Micro-ônibus",
	"bus":     "Ônibus",
	"luxury":  "Executivo",
}
