package api

// Station is a fuel station with consolidated data. Optional fields
// are nil (prices, distance) or empty (text) when the backend does not
// know them; coordinates are always present.
type Station struct {
	ID         int
	Name       string
	Address    string
	Lat        float64
	Lon        float64
	Province   string
	Locality   string
	Brand      string
	Schedule   string
	DistanceKm *float64 // km from the search reference, 3 decimals

	Diesel        *float64
	DieselPremium *float64
	Gasolina95    *float64
	Gasolina98    *float64
	GLP           *float64
}

// RadioStation is the raw response item from /estaciones/radio.
type RadioStation struct {
	IDEstacion      int      `json:"idEstacion"`
	NombreEstacion  string   `json:"nombreEstacion"`
	Direccion       string   `json:"direccion"`
	Latitud         float64  `json:"latitud"`
	Longitud        float64  `json:"longitud"`
	Provincia       string   `json:"provincia"`
	Localidad       string   `json:"localidad"`
	Marca           string   `json:"marca"`
	Horario         string   `json:"horario"`
	Distancia       *float64 `json:"distancia"`
	Diesel          *float64 `json:"Diesel"`
	DieselPremium   *float64 `json:"DieselPremium"`
	Gasolina95      *float64 `json:"Gasolina95"`
	Gasolina98      *float64 `json:"Gasolina98"`
	GLP             *float64 `json:"GLP"`
	DieselMedia     *float64 `json:"Diesel_media"`
	Gasolina95Media *float64 `json:"Gasolina95_media"`
}

// MunicipioStation is the raw response item from /estaciones/municipio/{id}.
type MunicipioStation struct {
	IDEstacion  int     `json:"idEstacion"`
	Nombre      string  `json:"nombre"`
	Direccion   string  `json:"direccion"`
	IDMunicipio int     `json:"idMunicipio"`
	Latitud     float64 `json:"latitud"`
	Longitud    float64 `json:"longitud"`
}

// Province as returned by /provincias.
type Province struct {
	IDProvincia int    `json:"idProvincia"`
	Nombre      string `json:"nombreProvincia"`
}

// ProvinceAverage is a per-fuel average price for a province, from
// /precios/medios/provincia/{id}.
type ProvinceAverage struct {
	IDProvincia    int     `json:"idProvincia"`
	FuelTypeName   string  `json:"fuelTypeName"`
	AveragePrice   float64 `json:"averagePrice"`
	LastCalculated string  `json:"lastCalculated"`
}
