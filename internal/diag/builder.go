package diag

func New(sev Severity, code Code, path, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Path:     path,
		Message:  msg,
	}
}

func NewError(code Code, path, msg string) Diagnostic {
	return New(SevError, code, path, msg)
}

func NewWarning(code Code, path, msg string) Diagnostic {
	return New(SevWarning, code, path, msg)
}

func (d Diagnostic) WithNote(path, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Path: path, Msg: msg})
	return d
}

func (d Diagnostic) WithRelated(paths ...string) Diagnostic {
	d.Related = append(d.Related, paths...)
	return d
}

func (d Diagnostic) WithCount(n int) Diagnostic {
	d.Count = n
	return d
}
