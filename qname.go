package yangwire

// QName is the qualified name of a schema node or identity.
type QName struct {
	Namespace string
	Revision  string
	Module    string
	Name      string
}

// IsZero reports whether q carries neither a name nor a namespace.
func (q QName) IsZero() bool { return q.Name == "" && q.Namespace == "" }

// String renders q as (namespace?revision=rev)name.
func (q QName) String() string {
	s := "(" + q.Namespace
	if q.Revision != "" {
		s += "?revision=" + q.Revision
	}
	return s + ")" + q.Name
}
