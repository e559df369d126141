package config

// WorldCosts maps each world id to its coin unlock cost. World 1 is free
// and every profile starts with it unlocked.
var WorldCosts = map[int]int64{
	1:  0,
	2:  300,
	3:  500,
	4:  700,
	5:  1000,
	6:  1500,
	7:  2000,
	8:  2500,
	9:  3000,
	10: 4000,
	11: 5000,
	12: 6000,
	13: 7000,
	14: 8000,
	15: 9000,
	16: 10000,
	17: 11000,
	18: 12000,
	19: 13000,
	20: 14000,
	21: 15000,
	22: 16000,
	23: 17000,
	24: 18000,
	25: 19000,
	26: 20000,
	27: 21000,
	28: 22000,
}
