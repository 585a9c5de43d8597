package model

// 运行参数，进程启动时确定，之后不再修改
type RunParams struct {
	N       int    `json:"n"`       // 网格点数
	Variant string `json:"variant"` // 算法类型: general / special
}

// 网格点上的数值解
type Point struct {
	X float64 `json:"x"`
	U float64 `json:"u"`
}

// 数值解序列，顺序即网格位置
type Series []Point

// Xs 返回横坐标序列
func (s Series) Xs() []float64 {
	xs := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.X
	}
	return xs
}

// Us 返回数值解序列
func (s Series) Us() []float64 {
	us := make([]float64, len(s))
	for i, p := range s {
		us[i] = p.U
	}
	return us
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 一次运行完成后返回给前端的结果
type RunReply struct {
	ID          string  `json:"id"`
	N           int     `json:"n"`
	Variant     string  `json:"variant"`
	DataPath    string  `json:"data_path"`
	PlotPath    string  `json:"plot_path"`
	Points      int     `json:"points"`        // 补充边界后的点数
	MaxAbsError float64 `json:"max_abs_error"` // 与解析解的最大绝对误差
	ElapsedMs   int64   `json:"elapsed_ms"`
}
