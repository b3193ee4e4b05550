package service

// Viewer 发起请求的用户；nil 表示匿名
type Viewer struct {
	ID       string
	Username string
}

// Authenticated 对 nil 接收者同样安全
func (v *Viewer) Authenticated() bool { return v != nil && v.ID != "" }

func requireViewer(v *Viewer) error {
	if !v.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}
