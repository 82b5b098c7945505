package handler

import "idcheck/internal/idcheck/models"

// ParseResponse is the HTTP response for POST /v1/idcards/parse.
type ParseResponse struct {
	Number       string `json:"number"`
	Birthdate    string `json:"birthdate"`
	ProvinceCode string `json:"province_code"`
	Province     string `json:"province"`
	Gender       string `json:"gender"`
	Male         bool   `json:"male"`
	Age          int    `json:"age"`
}

// CheckResponse is the HTTP response for POST /v1/idcards/check and one entry
// of a batch response.
type CheckResponse struct {
	Number    string `json:"number"`
	Scheme    string `json:"scheme"`
	Valid     bool   `json:"valid"`
	Checksum  string `json:"checksum"`
	Region    string `json:"region,omitempty"`
	Gender    string `json:"gender"`
	Reason    string `json:"reason,omitempty"`
	Hint      string `json:"hint,omitempty"`
	Converted string `json:"converted,omitempty"`
}

// ConvertResponse is the HTTP response for POST /v1/idcards/convert.
type ConvertResponse struct {
	Number string `json:"number"`
}

// BatchResponse is the HTTP response for POST /v1/idcards/batch.
type BatchResponse struct {
	Results []CheckResponse `json:"results"`
	Valid   int             `json:"valid"`
	Total   int             `json:"total"`
}

func fromParseResult(r *models.ParseResult) *ParseResponse {
	return &ParseResponse{
		Number:       r.MaskedNumber,
		Birthdate:    r.Birthdate.Format("2006-01-02"),
		ProvinceCode: r.ProvinceCode,
		Province:     r.Province,
		Gender:       r.Gender,
		Male:         r.Male,
		Age:          r.Age,
	}
}

func fromCheckResult(r models.CheckResult) CheckResponse {
	return CheckResponse{
		Number:    r.MaskedNumber,
		Scheme:    string(r.Scheme),
		Valid:     r.Valid,
		Checksum:  r.Checksum,
		Region:    r.Region,
		Gender:    r.Gender,
		Reason:    string(r.Reason),
		Hint:      string(r.Hint),
		Converted: r.Converted,
	}
}

func fromBatch(results []models.CheckResult) *BatchResponse {
	resp := &BatchResponse{
		Results: make([]CheckResponse, 0, len(results)),
		Total:   len(results),
	}
	for _, r := range results {
		if r.Valid {
			resp.Valid++
		}
		resp.Results = append(resp.Results, fromCheckResult(r))
	}
	return resp
}
