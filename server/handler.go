package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udawtr/mtclim-go/mtclim"
)

// 1日分の入力
type DayInput struct {
	Date string   `json:"date" binding:"required"`
	Tmin *float64 `json:"t_min" binding:"required"`
	Tmax *float64 `json:"t_max" binding:"required"`
	Prec *float64 `json:"prec" binding:"required"`
	Tdew *float64 `json:"tdew,omitempty"`
	Hum  *float64 `json:"hum,omitempty"`
}

// 計算の要求
type Request struct {
	Site mtclim.Site `json:"site"`
	Days []DayInput  `json:"days" binding:"required,min=1,dive"`
}

// 1日分の計算結果
type DayOutput struct {
	Date          string  `json:"date"`
	DayOfYear     int     `json:"day_of_year"`
	Tmin          float64 `json:"t_min"`
	Tmax          float64 `json:"t_max"`
	Prec          float64 `json:"prec"`
	Tday          float64 `json:"t_day"`
	SWE           float64 `json:"swe"`
	Tfmax         float64 `json:"tfmax"`
	Dayl          float64 `json:"dayl"`
	SWRad         float64 `json:"swrad"`
	Tskc          float64 `json:"tskc"`
	PET           float64 `json:"pet"`
	VaporPressure float64 `json:"vapor_pressure"`
}

// 計算結果
type Response struct {
	Days       []DayOutput `json:"days"`
	Iterations int         `json:"iterations"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// HTTPリクエストを処理します。
type Handler struct {
	params mtclim.Params
}

func NewHandler(params mtclim.Params) *Handler {
	return &Handler{params: params}
}

// POST /v1/mtclim
func (h *Handler) PostMtclim(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	f, err := toForcing(req.Days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 計算ごとに定数をコピーして使う
	params := h.params
	site := req.Site
	res, err := mtclim.Run(f, &site, &params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toResponse(res))
}

// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mtclim.ErrNotConverged):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mtclim.ErrMissingField),
		errors.Is(err, mtclim.ErrInvalidDays),
		errors.Is(err, mtclim.ErrConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toForcing(days []DayInput) (*mtclim.Forcing, error) {
	n := len(days)
	date := make([]time.Time, n)
	f := &mtclim.Forcing{
		Tmin: make([]float64, n),
		Tmax: make([]float64, n),
		Prec: make([]float64, n),
	}

	// 観測値は全日にある場合のみ用いる
	nTdew, nHum := 0, 0
	for _, d := range days {
		if d.Tdew != nil {
			nTdew++
		}
		if d.Hum != nil {
			nHum++
		}
	}
	hasTdew, hasHum := nTdew == n, nHum == n
	if hasTdew {
		f.Tdew = make([]float64, n)
	} else if nTdew > 0 {
		f.Warnings = append(f.Warnings, fmt.Sprintf(
			"tdew given on %d of %d days; observed dewpoint ignored", nTdew, n))
	}
	if hasHum {
		f.Hum = make([]float64, n)
	} else if nHum > 0 {
		f.Warnings = append(f.Warnings, fmt.Sprintf(
			"hum given on %d of %d days; observed humidity ignored", nHum, n))
	}

	for i, d := range days {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("day %d: invalid date %q", i, d.Date)
		}
		if d.Tmin == nil || d.Tmax == nil || d.Prec == nil {
			return nil, fmt.Errorf("%w: t_min, t_max and prec on day %d", mtclim.ErrMissingField, i)
		}
		date[i] = t
		f.Tmin[i] = *d.Tmin
		f.Tmax[i] = *d.Tmax
		f.Prec[i] = *d.Prec
		if hasTdew {
			f.Tdew[i] = *d.Tdew
		}
		if hasHum {
			f.Hum[i] = *d.Hum
		}
	}
	f.SetDates(date)
	return f, nil
}

func toResponse(res *mtclim.Result) Response {
	f := res.Forcing
	days := make([]DayOutput, f.Len())
	for i := range days {
		days[i] = DayOutput{
			Date:          f.Date[i].Format("2006-01-02"),
			DayOfYear:     f.DayOfYear[i],
			Tmin:          f.Tmin[i],
			Tmax:          f.Tmax[i],
			Prec:          f.Prec[i],
			Tday:          f.Tday[i],
			SWE:           f.SWE[i],
			Tfmax:         f.Tfmax[i],
			Dayl:          f.Dayl[i],
			SWRad:         f.SWRad[i],
			Tskc:          f.Tskc[i],
			PET:           f.PET[i],
			VaporPressure: f.VaporPressure[i],
		}
	}
	return Response{
		Days:       days,
		Iterations: res.Iterations,
		Warnings:   f.Warnings,
	}
}
