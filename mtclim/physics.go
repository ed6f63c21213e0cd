package mtclim

import "math"

//--------------------------------------
// 物理量の計算
//--------------------------------------

// 標準大気
const (
	pStd  = 101325.0   // 海面気圧 [Pa]
	tStd  = 288.15     // 海面気温 [K]
	lrStd = 0.0065     // 気温減率 [K/m]
	gStd  = 9.80665    // 重力加速度 [m/s2]
	rGas  = 8.3143     // 気体定数 [J/(mol K)]
	maAir = 28.9644e-3 // 空気のモル質量 [kg/mol]
	cpAir = 1010.0     // 空気の定圧比熱 [J/(kg K)]
	epsMw = 0.62196351 // 水と空気の分子量比
)

// 気温 T [℃] における飽和水蒸気圧 [Pa] を計算します。
// 0℃未満では氷面に対する補正を行います。
func SVP(T float64) float64 {
	svp := 0.61078 * math.Exp(17.269*T/(237.3+T))
	if T < 0 {
		svp *= 1.0 + 0.00972*T + 0.000042*T*T
	}
	return svp * 1000.0
}

// 標高 elev [m] の標準大気圧 [Pa] を計算します。
func AtmPres(elev float64) float64 {
	t1 := 1.0 - (lrStd*elev)/tStd
	t2 := gStd / (lrStd * (rGas / maAir))
	return pStd * math.Pow(t1, t2)
}

// Priestley-Taylor式による可能蒸発散量 [cm/day] を計算します。
// Args:
//
//	rad: 日中平均の短波放射量 [W/m2]
//	ta: 日中平均気温 [℃]
//	pa: 気圧 [Pa]
//	dayl: 日長 [s]
func CalcPET(rad float64, ta float64, pa float64, dayl float64) float64 {
	// アルベド0.2、地中熱流量を吸収放射の10%とした吸収放射量
	rnet := rad * 0.72

	// 蒸発潜熱 [J/kg]
	lhvap := 2.5023e6 - 2430.54*ta

	// 乾湿計定数 [Pa/K]
	gamma := cpAir * pa / (lhvap * epsMw)

	// 飽和水蒸気圧曲線の傾き [Pa/K]
	const dt = 0.2
	t1 := ta + dt
	t2 := ta - dt
	pvs1 := 610.7 * math.Exp(17.38*t1/(239.0+t1))
	pvs2 := 610.7 * math.Exp(17.38*t2/(239.0+t2))
	s := (pvs1 - pvs2) / (t1 - t2)

	// [kg/m2/day] = [mm/day]
	pet := (1.26 * (s / (s + gamma)) * rnet * dayl) / lhvap

	// 年降水量 [cm] との比に使うため cm/day で返す
	return pet / 10.0
}
