package model

// 网格与边界设定
// 1. 求解区间 [0, 1]
// 2. 齐次 Dirichlet 边界条件 u(0) = u(1) = 0
// 3. 解析解在 [0, 1] 上等距采样 1001 个点

const (
	DomainStart = 0.0
	DomainEnd   = 1.0

	// 边界值
	BoundaryLeft  = 0.0
	BoundaryRight = 0.0

	ReferenceSamples = 1001

	// 目录与文件命名约定
	ResultsRoot = "./results"
	PlotsRoot   = "./plots"
	DataExt     = ".txt"
	PlotExt     = ".pdf"
)

// 边界点
var (
	LeftBoundary  = Point{X: DomainStart, U: BoundaryLeft}
	RightBoundary = Point{X: DomainEnd, U: BoundaryRight}
)
