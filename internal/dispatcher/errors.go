package dispatcher

import "errors"

// ErrNilRegistry is the panic value when New is given no registry.
var ErrNilRegistry = errors.New("dispatcher: nil registry")
