// Package fuzztests houses Go fuzz harnesses for the symbol pools. Each
// harness splits arbitrary bytes into values, interns them and checks the
// interning contract with testkit.
//
// Назначение: искать нарушения уникальности и round-trip на произвольных
// байтах, включая границу inline/fallback компактных символов.
//
// Не делает: замеры производительности, генерацию корпусов.
//
// Зависимости: internal/pool, internal/short, internal/testkit,
// internal/workload.
package fuzztests
