package auth

import "github.com/alphadose/haxmap"

// MaxIntentosFallidos intentos consecutivos fallidos antes de bloquear la cuenta.
const MaxIntentosFallidos = 3

// lockoutTracker lleva los intentos fallidos por legajo. Estado explícito a
// nivel proceso: no se persiste con el usuario y se reinicia al reiniciar el
// proceso.
type lockoutTracker struct {
	intentos *haxmap.Map[int, int]
}

func newLockoutTracker() *lockoutTracker {
	return &lockoutTracker{intentos: haxmap.New[int, int]()}
}

// registrarFallo incrementa el contador del legajo y devuelve el total.
func (t *lockoutTracker) registrarFallo(legajo int) int {
	for {
		actual, ok := t.intentos.Get(legajo)
		if !ok {
			if _, cargado := t.intentos.GetOrSet(legajo, 1); !cargado {
				return 1
			}
			continue
		}
		if t.intentos.CompareAndSwap(legajo, actual, actual+1) {
			return actual + 1
		}
	}
}

// reiniciar pone el contador del legajo en cero.
func (t *lockoutTracker) reiniciar(legajo int) {
	t.intentos.Del(legajo)
}

// bloqueado indica si el legajo alcanzó el máximo de fallos consecutivos.
func (t *lockoutTracker) bloqueado(legajo int) bool {
	n, ok := t.intentos.Get(legajo)
	return ok && n >= MaxIntentosFallidos
}
