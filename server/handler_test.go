package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udawtr/mtclim-go/mtclim"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(mtclim.DefaultParams())
}

func makeRequest(n int) Request {
	start := time.Date(2005, 3, 1, 0, 0, 0, 0, time.UTC)
	days := make([]DayInput, n)
	for i := range days {
		tmin := 2.0 + float64(i%7)
		tmax := tmin + 8.0 + float64(i%3)
		prec := 0.0
		if i%5 == 0 {
			prec = 4.0
		}
		days[i] = DayInput{
			Date: start.AddDate(0, 0, i).Format("2006-01-02"),
			Tmin: &tmin,
			Tmax: &tmax,
			Prec: &prec,
		}
	}
	return Request{
		Site: mtclim.Site{Elev: 600.0, Lat: 35.0, BaseElev: 600.0, TminLapse: -6.5, TmaxLapse: -6.5},
		Days: days,
	}
}

func post(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/mtclim", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func Test_PostMtclim(t *testing.T) {
	router := newTestRouter()
	w := post(t, router, makeRequest(45))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Days, 45)
	assert.GreaterOrEqual(t, res.Iterations, 1)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "2005-03-01", res.Days[0].Date)
	assert.Equal(t, 60, res.Days[0].DayOfYear)
	for _, d := range res.Days {
		assert.Greater(t, d.VaporPressure, 0.0)
		assert.Greater(t, d.SWRad, 0.0)
	}
}

// 窓幅以下の系列は警告付きで返す
func Test_PostMtclim_ShortSeries(t *testing.T) {
	router := newTestRouter()
	w := post(t, router, makeRequest(10))
	require.Equal(t, http.StatusOK, w.Code)

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Warnings, 1)
}

func Test_PostMtclim_BadRequest(t *testing.T) {
	router := newTestRouter()

	// 必須項目の欠落
	req := makeRequest(5)
	req.Days[2].Prec = nil
	w := post(t, router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	req = makeRequest(5)
	req.Days[0].Tmin = nil
	w = post(t, router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 日付の欠落
	req = makeRequest(5)
	req.Days[3].Date = "2005-03-10"
	w = post(t, router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 日付の書式
	req = makeRequest(5)
	req.Days[0].Date = "03/01/2005"
	w = post(t, router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 日データなし
	w = post(t, router, Request{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// 一部の日だけの観測露点温度は使わず、警告を返す
func Test_PostMtclim_PartialObserved(t *testing.T) {
	router := newTestRouter()
	req := makeRequest(45)
	tdew := 1.0
	req.Days[0].Tdew = &tdew
	w := post(t, router, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "tdew given on 1 of 45 days")
}

func Test_toForcing(t *testing.T) {
	req := makeRequest(3)
	f, err := toForcing(req.Days)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())
	assert.Nil(t, f.Tdew)
	assert.Empty(t, f.Warnings)

	// 必須項目の欠落はパニックせずエラーにする
	for _, unset := range []func(d *DayInput){
		func(d *DayInput) { d.Tmin = nil },
		func(d *DayInput) { d.Tmax = nil },
		func(d *DayInput) { d.Prec = nil },
	} {
		req := makeRequest(3)
		unset(&req.Days[1])
		_, err := toForcing(req.Days)
		assert.ErrorIs(t, err, mtclim.ErrMissingField)
	}
}

func Test_statusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(mtclim.ErrNotConverged))
	assert.Equal(t, http.StatusBadRequest, statusFor(mtclim.ErrInvalidDays))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func Test_HealthCheck(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
