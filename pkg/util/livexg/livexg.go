package livexg

/**
* Livexg projects the goals still to come in a live football match.
* - Converts accumulated xG into a scoring rate per side
* - Scales it by pre-match strength (baseline, direct or market scenario)
* - Adjusts for scoreline, home advantage, momentum and luck
* - Prices the remaining time as a Poisson process and compares with the market
 */
